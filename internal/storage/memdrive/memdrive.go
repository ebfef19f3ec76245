// Package memdrive is an in-memory storage.Client used by tests. It keeps
// the same loose semantics as Drive: duplicate sibling names are allowed
// and folder IDs are opaque.
package memdrive

import (
	"context"
	"fmt"
	"sync"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage"
)

type node struct {
	id       string
	name     string
	parentID string
	folder   bool
}

// Drive is an in-memory folder tree.
type Drive struct {
	mu     sync.Mutex
	nodes  map[string]*node
	nextID int

	// Failure injection: when set, the corresponding call fails.
	FailList   error
	FailCreate error
	FailUpload error

	// Call counters for asserting remote fan-out.
	ListCalls   int
	CreateCalls int
}

// New returns an empty in-memory drive.
func New() *Drive {
	return &Drive{nodes: make(map[string]*node)}
}

// MustAddFolder seeds a folder and returns its ID. parentID "" means root.
func (d *Drive) MustAddFolder(parentID, name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.add(parentID, name, true)
}

func (d *Drive) add(parentID, name string, folder bool) string {
	if parentID == "" {
		parentID = storage.RootID
	}
	d.nextID++
	id := fmt.Sprintf("node-%d", d.nextID)
	d.nodes[id] = &node{id: id, name: name, parentID: parentID, folder: folder}
	return id
}

// ListChildren implements storage.Client.
func (d *Drive) ListChildren(ctx context.Context, parentID string) ([]storage.Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ListCalls++
	if d.FailList != nil {
		return nil, d.FailList
	}

	if parentID == "" {
		parentID = storage.RootID
	}
	var children []storage.Child
	// Deterministic order: insertion order by numeric ID suffix.
	for i := 1; i <= d.nextID; i++ {
		id := fmt.Sprintf("node-%d", i)
		n, ok := d.nodes[id]
		if !ok || !n.folder || n.parentID != parentID {
			continue
		}
		children = append(children, storage.Child{
			ID:        n.id,
			Name:      n.name,
			ParentIDs: []string{n.parentID},
		})
	}
	return children, nil
}

// CreateChild implements storage.Client.
func (d *Drive) CreateChild(ctx context.Context, parentID, name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.CreateCalls++
	if d.FailCreate != nil {
		return "", d.FailCreate
	}
	return d.add(parentID, name, true), nil
}

// UploadFile implements storage.Client.
func (d *Drive) UploadFile(ctx context.Context, parentID, name, mimeType string, data []byte) (storage.FileRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.FailUpload != nil {
		return storage.FileRef{}, d.FailUpload
	}
	id := d.add(parentID, name, false)
	return storage.FileRef{
		ID:          id,
		WebViewLink: "https://drive.example/" + id,
	}, nil
}

// FolderCount returns the number of folders currently in the tree.
func (d *Drive) FolderCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, nd := range d.nodes {
		if nd.folder {
			n++
		}
	}
	return n
}

// Factory returns this same drive for every credential.
type Factory struct {
	Drive *Drive

	// FailClient, when set, makes Client fail (simulates bad credentials).
	FailClient error
}

// Client implements storage.Factory.
func (f Factory) Client(ctx context.Context, accessToken string) (storage.Client, error) {
	if f.FailClient != nil {
		return nil, f.FailClient
	}
	return f.Drive, nil
}

var (
	_ storage.Client  = (*Drive)(nil)
	_ storage.Factory = Factory{}
)
