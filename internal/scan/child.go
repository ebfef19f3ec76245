package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage"
)

// ChildScanner lists the immediate children of an existing path prefix.
// It never creates folders.
type ChildScanner struct {
	client storage.Client
	match  domain.NameMatch
}

// NewChildScanner returns a child scanner using the given name-match policy.
func NewChildScanner(client storage.Client, match domain.NameMatch) *ChildScanner {
	return &ChildScanner{client: client, match: match}
}

// ScanChildren resolves pathPrefix segment-by-segment with find-only
// lookups and lists the terminal node's immediate children with fully
// qualified paths.
//
// A missing segment yields an empty list, not an error: the suggestion
// step may legitimately propose a brand-new top-level branch that does not
// exist yet.
func (s *ChildScanner) ScanChildren(ctx context.Context, pathPrefix string) ([]domain.FolderNode, error) {
	segments := SplitPath(pathPrefix)
	if len(segments) == 0 {
		return nil, domain.ErrMalformedPath
	}

	currentID := storage.RootID
	for _, segment := range segments {
		children, err := s.client.ListChildren(ctx, currentID)
		if err != nil {
			return nil, fmt.Errorf("%w: resolve %q: %v",
				domain.ErrRemoteUnavailable, pathPrefix, err)
		}

		found := ""
		for _, child := range children {
			if s.match.Equal(child.Name, segment) {
				found = child.ID
				break
			}
		}
		if found == "" {
			return []domain.FolderNode{}, nil
		}
		currentID = found
	}

	children, err := s.client.ListChildren(ctx, currentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list children of %q: %v",
			domain.ErrRemoteUnavailable, pathPrefix, err)
	}

	prefix := strings.Join(segments, "/")
	nodes := make([]domain.FolderNode, 0, len(children))
	for _, child := range children {
		nodes = append(nodes, domain.FolderNode{
			ID:        child.ID,
			Name:      child.Name,
			Path:      prefix + "/" + child.Name,
			Depth:     len(segments),
			ParentIDs: child.ParentIDs,
		})
	}
	return nodes, nil
}

// SplitPath splits a slash-delimited path into trimmed, non-empty segments.
func SplitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
