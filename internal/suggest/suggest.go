// Package suggest picks the best existing parent folder for a document.
// Implementations are advisory: a nil suggestion with a nil error means
// "no confident match, use the default path".
package suggest

import (
	"context"

	"github.com/ptiller/driveorg/internal/domain"
)

// Request carries the document metadata and the folder context the
// suggester may choose from.
type Request struct {
	Title    string
	Category string

	// RootFolders are the depth-0 folders from the shallow scan.
	RootFolders []domain.FolderNode
}

// Suggestion names an existing parent folder the document should live
// under.
type Suggestion struct {
	FolderID   string
	FolderName string
	FolderPath string
	Confidence float64
	Reasoning  string
}

// Suggester proposes a parent folder for a document.
type Suggester interface {
	// SuggestParent returns nil (with nil error) when no existing
	// folder is a confident match.
	SuggestParent(ctx context.Context, req Request) (*Suggestion, error)
}
