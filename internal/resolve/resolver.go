// Package resolve materializes slash-delimited folder paths in the remote
// store, creating missing segments as it descends.
package resolve

import (
	"context"
	"fmt"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/scan"
	"github.com/ptiller/driveorg/internal/storage"
)

// Resolver converts a path string into a concrete terminal folder ID.
type Resolver struct {
	client storage.Client
	match  domain.NameMatch
}

// New returns a resolver using the given name-match policy for find lookups.
func New(client storage.Client, match domain.NameMatch) *Resolver {
	return &Resolver{client: client, match: match}
}

// EnsurePath walks the path from its first segment, descending into an
// existing child when one matches and creating the folder when none does.
// It returns the terminal folder's ID and whether any segment was created.
//
// Already-created ancestors are not rolled back when a later segment fails:
// they are independently meaningful folders, not half of a transaction.
//
// Concurrent calls sharing an unresolved prefix can each miss the find
// check and create duplicate same-named siblings. There is no cross-call
// locking around the find-then-create sequence; callers that need stronger
// guarantees must serialize externally.
func (r *Resolver) EnsurePath(ctx context.Context, path string) (string, bool, error) {
	segments := scan.SplitPath(path)
	if len(segments) == 0 {
		return "", false, fmt.Errorf("%w: %q", domain.ErrMalformedPath, path)
	}

	currentID := storage.RootID
	createdAny := false
	for _, segment := range segments {
		id, err := r.findChild(ctx, currentID, segment)
		if err != nil {
			return "", createdAny, err
		}
		if id == "" {
			id, err = r.client.CreateChild(ctx, currentID, segment)
			if err != nil {
				return "", createdAny, fmt.Errorf("%w: create %q under %q: %v",
					domain.ErrRemoteUnavailable, segment, currentID, err)
			}
			createdAny = true
		}
		currentID = id
	}

	return currentID, createdAny, nil
}

// findChild returns the ID of the first child of parentID matching name,
// or "" when no child matches.
func (r *Resolver) findChild(ctx context.Context, parentID, name string) (string, error) {
	children, err := r.client.ListChildren(ctx, parentID)
	if err != nil {
		return "", fmt.Errorf("%w: find %q under %q: %v",
			domain.ErrRemoteUnavailable, name, parentID, err)
	}
	for _, child := range children {
		if r.match.Equal(child.Name, name) {
			return child.ID, nil
		}
	}
	return "", nil
}
