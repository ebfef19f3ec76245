// Package scan discovers the remote folder topology. The scanner walks the
// tree breadth-first up to a depth bound; the child scanner drills into one
// existing branch without creating anything.
package scan

import (
	"context"
	"fmt"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage"
)

// Scanner walks the remote tree breadth-first.
type Scanner struct {
	client storage.Client
}

// NewScanner returns a scanner over the given client.
func NewScanner(client storage.Client) *Scanner {
	return &Scanner{client: client}
}

// parentRef carries the listing frontier between depth levels.
type parentRef struct {
	id   string
	path string
}

// Scan returns every folder with depth <= maxDepth, ordered by depth.
//
// One ListChildren call is issued per parent per level, and all of depth k
// is discovered before any depth-k+1 listing starts, so each node's path is
// its parent's path plus "/" plus its name. Any remote failure aborts the
// whole scan: downstream consumers need a consistent snapshot, and a partial
// folder list could make the suggestion step invent a path that collides
// with an undiscovered existing folder.
func (s *Scanner) Scan(ctx context.Context, maxDepth int) (*domain.ScanResult, error) {
	result := &domain.ScanResult{
		Folders: []domain.FolderNode{},
		Paths:   []string{},
	}

	frontier := []parentRef{{id: storage.RootID, path: ""}}
	for depth := 0; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []parentRef
		for _, parent := range frontier {
			children, err := s.client.ListChildren(ctx, parent.id)
			if err != nil {
				return nil, fmt.Errorf("%w: list children of %q at depth %d: %v",
					domain.ErrRemoteUnavailable, parent.path, depth, err)
			}

			for _, child := range children {
				path := child.Name
				if parent.path != "" {
					path = parent.path + "/" + child.Name
				}
				result.Folders = append(result.Folders, domain.FolderNode{
					ID:        child.ID,
					Name:      child.Name,
					Path:      path,
					Depth:     depth,
					ParentIDs: child.ParentIDs,
				})
				next = append(next, parentRef{id: child.ID, path: path})
			}
		}
		frontier = next
	}

	for _, f := range result.Folders {
		result.Paths = append(result.Paths, f.Path)
	}
	return result, nil
}
