package services

import (
	"context"

	"github.com/adampresley/kenshot/pkg/cloudinary"
)

/*
mockCloudinaryClient lets each test override just the store calls it
cares about. Unset calls succeed with empty results.
*/
type mockCloudinaryClient struct {
	searchFn                  func(ctx context.Context, search cloudinary.SearchRequest) ([]cloudinary.Resource, error)
	rootFoldersFn             func(ctx context.Context) ([]cloudinary.Folder, error)
	destroyFn                 func(ctx context.Context, publicID string, invalidate bool) (cloudinary.DestroyResult, error)
	deleteResourcesByPrefixFn func(ctx context.Context, prefix string) error
	deleteFolderFn            func(ctx context.Context, name string) error
	uploadFn                  func(ctx context.Context, upload cloudinary.UploadRequest) (*cloudinary.UploadResult, error)
	updateContextFn           func(ctx context.Context, publicID string, contextValues map[string]string) error
	pingFn                    func(ctx context.Context) error
}

func (m *mockCloudinaryClient) Search(ctx context.Context, search cloudinary.SearchRequest) ([]cloudinary.Resource, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, search)
	}
	return []cloudinary.Resource{}, nil
}

func (m *mockCloudinaryClient) RootFolders(ctx context.Context) ([]cloudinary.Folder, error) {
	if m.rootFoldersFn != nil {
		return m.rootFoldersFn(ctx)
	}
	return []cloudinary.Folder{}, nil
}

func (m *mockCloudinaryClient) Destroy(ctx context.Context, publicID string, invalidate bool) (cloudinary.DestroyResult, error) {
	if m.destroyFn != nil {
		return m.destroyFn(ctx, publicID, invalidate)
	}
	return cloudinary.DestroyOK, nil
}

func (m *mockCloudinaryClient) DeleteResourcesByPrefix(ctx context.Context, prefix string) error {
	if m.deleteResourcesByPrefixFn != nil {
		return m.deleteResourcesByPrefixFn(ctx, prefix)
	}
	return nil
}

func (m *mockCloudinaryClient) DeleteFolder(ctx context.Context, name string) error {
	if m.deleteFolderFn != nil {
		return m.deleteFolderFn(ctx, name)
	}
	return nil
}

func (m *mockCloudinaryClient) Upload(ctx context.Context, upload cloudinary.UploadRequest) (*cloudinary.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, upload)
	}
	return &cloudinary.UploadResult{}, nil
}

func (m *mockCloudinaryClient) UpdateContext(ctx context.Context, publicID string, contextValues map[string]string) error {
	if m.updateContextFn != nil {
		return m.updateContextFn(ctx, publicID, contextValues)
	}
	return nil
}

func (m *mockCloudinaryClient) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}
