package cloudinary

import (
	"fmt"
	"io"
	"time"
)

/*
StoreError is returned for any remote call that fails, transport or
logical. The client performs no retries; callers decide what a failed
call means for the enclosing operation.
*/
type StoreError struct {
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("cloudinary: %s", e.Message)
	}

	return fmt.Sprintf("cloudinary: %s (status %d)", e.Message, e.StatusCode)
}

type SearchRequest struct {
	Expression string
	SortBy     string
	SortDir    string
	MaxResults int
}

type Resource struct {
	PublicID  string          `json:"public_id"`
	Format    string          `json:"format"`
	URL       string          `json:"url"`
	SecureURL string          `json:"secure_url"`
	Folder    string          `json:"folder"`
	CreatedAt time.Time       `json:"created_at"`
	Context   ResourceContext `json:"context"`
}

type ResourceContext struct {
	Custom map[string]string `json:"custom"`
}

type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type DestroyResult string

const (
	DestroyOK       DestroyResult = "ok"
	DestroyNotFound DestroyResult = "not found"
)

type UploadRequest struct {
	/*
	 * The upload source is either a local file (File + Filename) or a
	 * remote URL the store fetches itself. RemoteURL wins when both
	 * are set.
	 */
	File      io.Reader
	Filename  string
	RemoteURL string

	Folder   string
	PublicID string
	Context  map[string]string
}

type UploadResult struct {
	PublicID  string    `json:"public_id"`
	URL       string    `json:"url"`
	SecureURL string    `json:"secure_url"`
	Format    string    `json:"format"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}
