package storage

import "context"

// RootID addresses the root of the remote tree in place of a folder ID.
const RootID = "root"

// Child is one immediate child folder returned by a listing.
type Child struct {
	ID        string
	Name      string
	ParentIDs []string
}

// FileRef identifies an uploaded file.
type FileRef struct {
	ID          string
	WebViewLink string
}

// Client is the narrow remote-tree surface the engine depends on.
// All implementations must return domain-level errors so callers can
// distinguish soft misses from remote failures.
type Client interface {
	// ListChildren returns the immediate child folders of parentID.
	// An empty parentID or RootID lists the top level.
	ListChildren(ctx context.Context, parentID string) ([]Child, error)

	// CreateChild creates a folder named name under parentID and
	// returns its ID.
	CreateChild(ctx context.Context, parentID, name string) (string, error)

	// UploadFile stores data as a file named name under parentID.
	UploadFile(ctx context.Context, parentID, name, mimeType string, data []byte) (FileRef, error)
}

// Factory builds a Client for a caller-supplied bearer credential.
// An empty token selects the fallback service credential.
type Factory interface {
	Client(ctx context.Context, accessToken string) (Client, error)
}
