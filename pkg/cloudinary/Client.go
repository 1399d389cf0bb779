package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBaseURL = "https://api.cloudinary.com/v1_1"

/*
CloudinaryClient is a typed wrapper around the media store's REST
surface: search, folder listing, destroy, bulk delete, upload, and
context metadata updates. Albums are top-level folders at the store.
*/
type CloudinaryClient interface {
	Search(ctx context.Context, search SearchRequest) ([]Resource, error)
	RootFolders(ctx context.Context) ([]Folder, error)
	Destroy(ctx context.Context, publicID string, invalidate bool) (DestroyResult, error)
	DeleteResourcesByPrefix(ctx context.Context, prefix string) error
	DeleteFolder(ctx context.Context, name string) error
	Upload(ctx context.Context, upload UploadRequest) (*UploadResult, error)
	UpdateContext(ctx context.Context, publicID string, contextValues map[string]string) error
	Ping(ctx context.Context) error
}

type ClientConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string

	// APIBaseURL overrides the Cloudinary API host. Used in tests.
	APIBaseURL string
	HTTPClient *http.Client
}

type Client struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadPreset string
	apiBaseURL   string
	httpClient   *http.Client
}

func NewClient(config ClientConfig) Client {
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}

	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: time.Second * 60}
	}

	return Client{
		cloudName:    config.CloudName,
		apiKey:       config.APIKey,
		apiSecret:    config.APISecret,
		uploadPreset: config.UploadPreset,
		apiBaseURL:   config.APIBaseURL,
		httpClient:   config.HTTPClient,
	}
}

/*
DeliveryBaseURL returns the base URL photo URLs served by this cloud
start with. Used to recognize URLs that already belong to the store.
*/
func (c Client) DeliveryBaseURL() string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/", c.cloudName)
}

func (c Client) Search(ctx context.Context, search SearchRequest) ([]Resource, error) {
	var (
		err  error
		body []byte
	)

	payload := map[string]any{
		"expression":  search.Expression,
		"max_results": search.MaxResults,
	}

	if search.SortBy != "" {
		direction := search.SortDir

		if direction == "" {
			direction = "desc"
		}

		payload["sort_by"] = []map[string]string{
			{search.SortBy: direction},
		}
	}

	if body, err = json.Marshal(payload); err != nil {
		return nil, fmt.Errorf("error building search request: %w", err)
	}

	result := struct {
		TotalCount int        `json:"total_count"`
		Resources  []Resource `json:"resources"`
	}{}

	err = c.do(ctx, http.MethodPost, c.apiURL("resources", "search"), "application/json", bytes.NewReader(body), &result)

	if err != nil {
		return nil, err
	}

	return result.Resources, nil
}

func (c Client) RootFolders(ctx context.Context) ([]Folder, error) {
	result := struct {
		Folders []Folder `json:"folders"`
	}{}

	if err := c.do(ctx, http.MethodGet, c.apiURL("folders"), "", nil, &result); err != nil {
		return nil, err
	}

	return result.Folders, nil
}

/*
Destroy removes a single image by public ID. The store reports the
outcome as a string: "ok", "not found", or anything else for a failed
delete. That three-way result is surfaced verbatim.
*/
func (c Client) Destroy(ctx context.Context, publicID string, invalidate bool) (DestroyResult, error) {
	params := url.Values{}
	params.Set("public_id", publicID)
	params.Set("timestamp", fmt.Sprint(time.Now().Unix()))

	if invalidate {
		params.Set("invalidate", "true")
	}

	c.sign(params)

	result := struct {
		Result string `json:"result"`
	}{}

	err := c.do(
		ctx,
		http.MethodPost,
		c.apiURL("image", "destroy"),
		"application/x-www-form-urlencoded",
		strings.NewReader(params.Encode()),
		&result,
	)

	if err != nil {
		return "", err
	}

	return DestroyResult(result.Result), nil
}

func (c Client) DeleteResourcesByPrefix(ctx context.Context, prefix string) error {
	u := c.apiURL("resources", "image", "upload") + "?prefix=" + url.QueryEscape(prefix)
	return c.do(ctx, http.MethodDelete, u, "", nil, nil)
}

func (c Client) DeleteFolder(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, c.apiURL("folders", name), "", nil, nil)
}

func (c Client) Upload(ctx context.Context, upload UploadRequest) (*UploadResult, error) {
	var (
		err error
	)

	params := url.Values{}
	params.Set("timestamp", fmt.Sprint(time.Now().Unix()))

	if upload.Folder != "" {
		params.Set("folder", upload.Folder)
	}

	if upload.PublicID != "" {
		params.Set("public_id", upload.PublicID)
	}

	if len(upload.Context) > 0 {
		params.Set("context", serializeContext(upload.Context))
	}

	if c.uploadPreset != "" {
		params.Set("upload_preset", c.uploadPreset)
	}

	c.sign(params)

	result := &UploadResult{}

	/*
	 * Remote URLs are fetched by the store itself, so a plain form post
	 * is enough. Local files go up as multipart.
	 */
	if upload.RemoteURL != "" {
		params.Set("file", upload.RemoteURL)

		err = c.do(
			ctx,
			http.MethodPost,
			c.apiURL("image", "upload"),
			"application/x-www-form-urlencoded",
			strings.NewReader(params.Encode()),
			result,
		)

		if err != nil {
			return nil, err
		}

		return result, nil
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	for key := range params {
		if err = form.WriteField(key, params.Get(key)); err != nil {
			return nil, fmt.Errorf("error writing upload form field %s: %w", key, err)
		}
	}

	filePart, err := form.CreateFormFile("file", upload.Filename)

	if err != nil {
		return nil, fmt.Errorf("error creating upload form file: %w", err)
	}

	if _, err = io.Copy(filePart, upload.File); err != nil {
		return nil, fmt.Errorf("error reading upload file %s: %w", upload.Filename, err)
	}

	if err = form.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing upload form: %w", err)
	}

	err = c.do(ctx, http.MethodPost, c.apiURL("image", "upload"), form.FormDataContentType(), body, result)

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c Client) UpdateContext(ctx context.Context, publicID string, contextValues map[string]string) error {
	params := url.Values{}
	params.Set("context", serializeContext(contextValues))

	return c.do(
		ctx,
		http.MethodPost,
		c.apiURL("resources", "image", "upload", publicID),
		"application/x-www-form-urlencoded",
		strings.NewReader(params.Encode()),
		nil,
	)
}

func (c Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.apiURL("ping"), "", nil, nil)
}

/*
apiURL joins path segments under this cloud's API root. Segments may
contain slashes (public IDs include their folder path) and are kept
as-is.
*/
func (c Client) apiURL(segments ...string) string {
	return c.apiBaseURL + "/" + c.cloudName + "/" + strings.Join(segments, "/")
}

func (c Client) do(ctx context.Context, method, u, contentType string, body io.Reader, out any) error {
	var (
		err      error
		request  *http.Request
		response *http.Response
	)

	if request, err = http.NewRequestWithContext(ctx, method, u, body); err != nil {
		return fmt.Errorf("error creating request for %s: %w", u, err)
	}

	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	request.SetBasicAuth(c.apiKey, c.apiSecret)

	if response, err = c.httpClient.Do(request); err != nil {
		return &StoreError{Message: err.Error()}
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return c.apiError(response)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err = json.NewDecoder(response.Body).Decode(out); err != nil {
		return &StoreError{StatusCode: response.StatusCode, Message: fmt.Sprintf("error parsing response: %s", err.Error())}
	}

	return nil
}

func (c Client) apiError(response *http.Response) error {
	result := struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}{}

	body, _ := io.ReadAll(response.Body)

	if err := json.Unmarshal(body, &result); err != nil || result.Error.Message == "" {
		return &StoreError{StatusCode: response.StatusCode, Message: http.StatusText(response.StatusCode)}
	}

	return &StoreError{StatusCode: response.StatusCode, Message: result.Error.Message}
}
