package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(server *httptest.Server) Client {
	return NewClient(ClientConfig{
		CloudName:  "testcloud",
		APIKey:     "key123",
		APISecret:  "secret456",
		APIBaseURL: server.URL,
		HTTPClient: server.Client(),
	})
}

func TestSearchSendsExpressionAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/testcloud/resources/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		user, pass, ok := r.BasicAuth()

		if !ok || user != "key123" || pass != "secret456" {
			t.Error("expected API credentials as basic auth")
		}

		body := struct {
			Expression string              `json:"expression"`
			MaxResults int                 `json:"max_results"`
			SortBy     []map[string]string `json:"sort_by"`
		}{}

		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("error decoding search body: %v", err)
		}

		if body.Expression != "folder:travel" || body.MaxResults != 1 {
			t.Errorf("unexpected search body: %+v", body)
		}

		if len(body.SortBy) != 1 || body.SortBy[0]["created_at"] != "desc" {
			t.Errorf("unexpected sort: %+v", body.SortBy)
		}

		fmt.Fprint(w, `{
			"total_count": 1,
			"resources": [
				{
					"public_id": "travel/abc",
					"secure_url": "https://res.cloudinary.com/testcloud/image/upload/v1/travel/abc.jpg",
					"folder": "travel",
					"created_at": "2026-03-14T10:00:00Z",
					"context": {"custom": {"uploadedBy": "adam"}}
				}
			]
		}`)
	}))

	defer server.Close()

	resources, err := newTestClient(server).Search(context.Background(), SearchRequest{
		Expression: "folder:travel",
		SortBy:     "created_at",
		SortDir:    "desc",
		MaxResults: 1,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(resources))
	}

	resource := resources[0]

	if resource.PublicID != "travel/abc" || resource.Folder != "travel" {
		t.Errorf("unexpected resource: %+v", resource)
	}

	if resource.Context.Custom["uploadedBy"] != "adam" {
		t.Errorf("expected custom context to parse, got %+v", resource.Context)
	}
}

func TestRootFolders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/testcloud/folders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		fmt.Fprint(w, `{"folders": [{"name": "travel", "path": "travel"}, {"name": "portraits", "path": "portraits"}]}`)
	}))

	defer server.Close()

	folders, err := newTestClient(server).RootFolders(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(folders) != 2 || folders[0].Name != "travel" || folders[1].Name != "portraits" {
		t.Errorf("unexpected folders: %+v", folders)
	}
}

func TestDestroySignsAndMapsResults(t *testing.T) {
	tests := []struct {
		response string
		want     DestroyResult
	}{
		{response: `{"result": "ok"}`, want: DestroyOK},
		{response: `{"result": "not found"}`, want: DestroyNotFound},
	}

	for _, test := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/testcloud/image/destroy" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			if err := r.ParseForm(); err != nil {
				t.Fatalf("error parsing destroy form: %v", err)
			}

			if r.PostForm.Get("public_id") != "travel/abc" || r.PostForm.Get("invalidate") != "true" {
				t.Errorf("unexpected destroy params: %v", r.PostForm)
			}

			/*
			 * The signature covers the sorted params, excluding api_key
			 * and the signature itself.
			 */
			toSign := fmt.Sprintf(
				"invalidate=true&public_id=%s&timestamp=%s",
				r.PostForm.Get("public_id"),
				r.PostForm.Get("timestamp"),
			)

			sum := sha1.Sum([]byte(toSign + "secret456"))

			if r.PostForm.Get("signature") != hex.EncodeToString(sum[:]) {
				t.Error("destroy request signature does not verify")
			}

			fmt.Fprint(w, test.response)
		}))

		result, err := newTestClient(server).Destroy(context.Background(), "travel/abc", true)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result != test.want {
			t.Errorf("expected result %q, got %q", test.want, result)
		}

		server.Close()
	}
}

func TestDeleteResourcesByPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/testcloud/resources/image/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		if r.URL.Query().Get("prefix") != "travel/" {
			t.Errorf("unexpected prefix %q", r.URL.Query().Get("prefix"))
		}

		fmt.Fprint(w, `{"deleted": {}}`)
	}))

	defer server.Close()

	if err := newTestClient(server).DeleteResourcesByPrefix(context.Background(), "travel/"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUploadRemoteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/testcloud/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if err := r.ParseForm(); err != nil {
			t.Fatalf("error parsing upload form: %v", err)
		}

		if r.PostForm.Get("file") != "https://other.example.com/img.jpg" {
			t.Errorf("expected the remote URL as the file param, got %q", r.PostForm.Get("file"))
		}

		if r.PostForm.Get("folder") != "travel" {
			t.Errorf("unexpected folder %q", r.PostForm.Get("folder"))
		}

		if r.PostForm.Get("context") != "album=travel|uploadedBy=adam" {
			t.Errorf("unexpected context %q", r.PostForm.Get("context"))
		}

		fmt.Fprint(w, `{"public_id": "travel/xyz", "secure_url": "https://res.cloudinary.com/testcloud/image/upload/v1/travel/xyz.jpg"}`)
	}))

	defer server.Close()

	result, err := newTestClient(server).Upload(context.Background(), UploadRequest{
		RemoteURL: "https://other.example.com/img.jpg",
		Folder:    "travel",
		Context: map[string]string{
			"album":      "travel",
			"uploadedBy": "adam",
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.PublicID != "travel/xyz" {
		t.Errorf("unexpected upload result: %+v", result)
	}
}

func TestUpdateContextTargetsPublicID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/testcloud/resources/image/upload/travel/abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if err := r.ParseForm(); err != nil {
			t.Fatalf("error parsing form: %v", err)
		}

		if r.PostForm.Get("context") != "album=x|uploadedBy=anonymous" {
			t.Errorf("unexpected context %q", r.PostForm.Get("context"))
		}

		fmt.Fprint(w, `{}`)
	}))

	defer server.Close()

	err := newTestClient(server).UpdateContext(context.Background(), "travel/abc", map[string]string{
		"album":      "x",
		"uploadedBy": "anonymous",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStoreErrorRendering(t *testing.T) {
	apiErr := &StoreError{StatusCode: http.StatusBadGateway, Message: "upstream busy"}

	if apiErr.Error() != "cloudinary: upstream busy (status 502)" {
		t.Errorf("unexpected message %q", apiErr.Error())
	}

	// Transport failures never get as far as a status code.
	transportErr := &StoreError{Message: "connection refused"}

	if transportErr.Error() != "cloudinary: connection refused" {
		t.Errorf("unexpected message %q", transportErr.Error())
	}
}

func TestFailuresBecomeStoreErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Invalid credentials"}}`)
	}))

	defer server.Close()

	_, err := newTestClient(server).Search(context.Background(), SearchRequest{Expression: "resource_type:image", MaxResults: 10})

	storeErr := &StoreError{}

	if !errors.As(err, &storeErr) {
		t.Fatalf("expected a StoreError, got %T: %v", err, err)
	}

	if storeErr.StatusCode != http.StatusUnauthorized || storeErr.Message != "Invalid credentials" {
		t.Errorf("unexpected store error: %+v", storeErr)
	}
}
