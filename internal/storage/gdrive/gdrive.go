package gdrive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage"
)

const (
	// MimeTypeFolder is the MIME type for Google Drive folders
	MimeTypeFolder = "application/vnd.google-apps.folder"
	// PageSize is the number of folders to fetch per request
	PageSize = 100
)

// Client implements storage.Client against the Google Drive v3 API.
type Client struct {
	service *drive.Service
}

// New creates a Drive client for the given OAuth access token. An empty
// token falls back to application default credentials (service account),
// matching the backend-operation path.
func New(ctx context.Context, accessToken string) (*Client, error) {
	var opts []option.ClientOption
	if accessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		opts = append(opts, option.WithTokenSource(src))
	} else {
		opts = append(opts,
			option.WithScopes(drive.DriveFileScope, drive.DriveMetadataReadonlyScope))
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create Drive service: %v", domain.ErrCredential, err)
	}
	return &Client{service: service}, nil
}

// ListChildren returns the immediate child folders of parentID.
func (c *Client) ListChildren(ctx context.Context, parentID string) ([]storage.Child, error) {
	if parentID == "" {
		parentID = storage.RootID
	}

	query := fmt.Sprintf(
		"mimeType = '%s' and trashed = false and '%s' in parents",
		MimeTypeFolder, escapeQueryString(parentID))

	var children []storage.Child
	pageToken := ""
	for {
		call := c.service.Files.List().
			Q(query).
			Spaces("drive").
			PageSize(PageSize).
			Fields("nextPageToken, files(id, name, parents)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Context(ctx).Do()
		if err != nil {
			return nil, mapError(err)
		}

		for _, f := range fileList.Files {
			children = append(children, storage.Child{
				ID:        f.Id,
				Name:      f.Name,
				ParentIDs: f.Parents,
			})
		}

		pageToken = fileList.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return children, nil
}

// CreateChild creates a folder under parentID and returns its ID.
func (c *Client) CreateChild(ctx context.Context, parentID, name string) (string, error) {
	folder := &drive.File{
		Name:     name,
		MimeType: MimeTypeFolder,
	}
	if parentID != "" && parentID != storage.RootID {
		folder.Parents = []string{parentID}
	}

	created, err := c.service.Files.Create(folder).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return "", mapError(err)
	}
	return created.Id, nil
}

// UploadFile stores data as a file under parentID.
func (c *Client) UploadFile(ctx context.Context, parentID, name, mimeType string, data []byte) (storage.FileRef, error) {
	file := &drive.File{Name: name}
	if parentID != "" && parentID != storage.RootID {
		file.Parents = []string{parentID}
	}

	created, err := c.service.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return storage.FileRef{}, mapError(err)
	}

	return storage.FileRef{ID: created.Id, WebViewLink: created.WebViewLink}, nil
}

// escapeQueryString escapes special characters in Drive query strings
func escapeQueryString(s string) string {
	// Escape backslash first, then single quote
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	return s
}

// mapError converts Google API errors to domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return fmt.Errorf("%w: %v", domain.ErrCredential, err)
		case 403:
			return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
		case 404:
			return domain.ErrNotFound
		case 409:
			return domain.ErrAlreadyExists
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
}

// Factory builds per-credential Drive clients.
type Factory struct{}

// Client implements storage.Factory.
func (Factory) Client(ctx context.Context, accessToken string) (storage.Client, error) {
	return New(ctx, accessToken)
}

// Compile-time interface checks
var (
	_ storage.Client  = (*Client)(nil)
	_ storage.Factory = Factory{}
)
