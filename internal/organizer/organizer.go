// Package organizer composes the scanner, cache, resolver and suggestion
// collaborator into the four operations callers use: scan, suggest-paths,
// ensure-path and scan-children, plus cache clearing.
package organizer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ptiller/driveorg/internal/cache"
	"github.com/ptiller/driveorg/internal/classify"
	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/logger"
	"github.com/ptiller/driveorg/internal/resolve"
	"github.com/ptiller/driveorg/internal/scan"
	"github.com/ptiller/driveorg/internal/storage"
	"github.com/ptiller/driveorg/internal/suggest"
)

// shallowDepth is the phase-1 scan depth: top-level folders plus one level
// of children, enough context for the suggestion step without a full walk.
const shallowDepth = 1

// Organizer is the folder-topology engine.
type Organizer struct {
	factory   storage.Factory
	cache     *cache.FolderCache
	suggester suggest.Suggester
	match     domain.NameMatch
	log       logger.Logger

	// group collapses concurrent phase-1 scans per principal so a burst
	// of requests does not fan out duplicate Drive walks.
	group singleflight.Group
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithNameMatch sets the name-match policy for resolution and drill-down.
func WithNameMatch(match domain.NameMatch) Option {
	return func(o *Organizer) { o.match = match }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Organizer) { o.log = log }
}

// New creates an organizer.
func New(factory storage.Factory, folderCache *cache.FolderCache, suggester suggest.Suggester, opts ...Option) *Organizer {
	o := &Organizer{
		factory:   factory,
		cache:     folderCache,
		suggester: suggester,
		match:     domain.MatchExact,
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Scan walks the principal's tree up to maxDepth. It always hits the
// remote store; the cache serves only the progressive-scan fast path.
func (o *Organizer) Scan(ctx context.Context, accessToken string, maxDepth int) (*domain.ScanResult, error) {
	client, err := o.factory.Client(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return scan.NewScanner(client).Scan(ctx, maxDepth)
}

// ScanChildren lists the immediate children of an existing path prefix.
// A missing prefix yields an empty list.
func (o *Organizer) ScanChildren(ctx context.Context, accessToken, pathPrefix string) ([]domain.FolderNode, error) {
	client, err := o.factory.Client(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return scan.NewChildScanner(client, o.match).ScanChildren(ctx, pathPrefix)
}

// EnsurePath materializes path for the principal, creating missing
// segments, and returns the terminal folder ID. When anything was created
// the principal's cache entry is invalidated so the next scan sees it.
func (o *Organizer) EnsurePath(ctx context.Context, accessToken, principalID, path string) (string, bool, error) {
	client, err := o.factory.Client(ctx, accessToken)
	if err != nil {
		return "", false, err
	}

	finalID, createdAny, err := resolve.New(client, o.match).EnsurePath(ctx, path)
	if createdAny {
		o.cache.Invalidate(principalID)
	}
	if err != nil {
		return "", createdAny, err
	}

	o.log.Debug("path ensured", "principal", principalID, "path", path, "created", createdAny)
	return finalID, createdAny, nil
}

// ClearCache drops the principal's cached scan.
func (o *Organizer) ClearCache(principalID string) {
	o.cache.Invalidate(principalID)
}

// SuggestPaths runs the progressive scan for one document.
//
// Phase 1 is a shallow scan (through the cache when fresh). The suggestion
// collaborator then picks a parent branch from the top-level folders, and
// the destination path becomes parent/Category/year, or Category/year when
// nothing matched. Phase 2 runs only when the destination has more than
// one segment: the first segment's immediate children are merged into the
// candidate list so the caller can offer real alternatives.
func (o *Organizer) SuggestPaths(ctx context.Context, accessToken, principalID string, doc domain.Document) (*domain.OrganizeResult, error) {
	snapshot, err := o.shallowScan(ctx, accessToken, principalID)
	if err != nil {
		return nil, err
	}

	roots := rootFolders(snapshot.Folders)
	result := &domain.OrganizeResult{
		Title:          doc.Title,
		Category:       doc.Category,
		Year:           doc.Year,
		ParentFolders:  roots,
		CandidatePaths: append([]string(nil), snapshot.Paths...),
	}

	suggestion := o.askSuggester(ctx, doc, roots)
	if suggestion != nil {
		result.SuggestedFolder = suggestion.FolderName
		result.SuggestedID = suggestion.FolderID
		result.Reasoning = suggestion.Reasoning
		result.SuggestedPath = fmt.Sprintf("%s/%s/%d",
			suggestion.FolderName, classify.Capitalize(doc.Category), doc.Year)
	} else {
		result.SuggestedPath = classify.DefaultPath(doc.Category, doc.Year)
	}

	if branch, deep := firstSegment(result.SuggestedPath); deep {
		children, err := o.ScanChildren(ctx, accessToken, branch)
		if err != nil {
			return nil, err
		}
		result.CandidatePaths = mergePaths(result.CandidatePaths, children)
	}

	return result, nil
}

// shallowScan returns the phase-1 snapshot, served from the cache when
// fresh. Concurrent misses for one principal share a single remote walk.
func (o *Organizer) shallowScan(ctx context.Context, accessToken, principalID string) (*domain.ScanResult, error) {
	if entry, ok := o.cache.Get(principalID); ok {
		return &domain.ScanResult{Folders: entry.Folders, Paths: entry.Paths}, nil
	}

	v, err, _ := o.group.Do(principalID, func() (any, error) {
		result, err := o.Scan(ctx, accessToken, shallowDepth)
		if err != nil {
			return nil, err
		}
		o.cache.Put(principalID, result.Folders, result.Paths)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ScanResult), nil
}

// askSuggester tolerates collaborator failure: a broken or unreachable
// suggester degrades to the deterministic default path, never to an error.
func (o *Organizer) askSuggester(ctx context.Context, doc domain.Document, roots []domain.FolderNode) *suggest.Suggestion {
	if o.suggester == nil || len(roots) == 0 {
		return nil
	}
	suggestion, err := o.suggester.SuggestParent(ctx, suggest.Request{
		Title:       doc.Title,
		Category:    doc.Category,
		RootFolders: roots,
	})
	if err != nil {
		o.log.Warn("suggestion collaborator failed, using default path", "err", err)
		return nil
	}
	return suggestion
}

func rootFolders(folders []domain.FolderNode) []domain.FolderNode {
	var roots []domain.FolderNode
	for _, f := range folders {
		if f.Depth == 0 {
			roots = append(roots, f)
		}
	}
	return roots
}

// firstSegment returns the leading path segment and whether the path has
// more than one segment.
func firstSegment(path string) (string, bool) {
	segments := scan.SplitPath(path)
	if len(segments) < 2 {
		return "", false
	}
	return segments[0], true
}

// mergePaths appends the drill-down paths that phase 1 did not already
// discover, preserving order.
func mergePaths(existing []string, children []domain.FolderNode) []string {
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p] = true
	}
	for _, child := range children {
		if !seen[child.Path] {
			existing = append(existing, child.Path)
			seen[child.Path] = true
		}
	}
	return existing
}

// Upload ensures folderPath exists and stores the document in its
// terminal folder. Created ancestors are kept even if the upload itself
// fails afterwards.
func (o *Organizer) Upload(ctx context.Context, accessToken, principalID, folderPath, filename, mimeType string, data []byte) (storage.FileRef, error) {
	client, err := o.factory.Client(ctx, accessToken)
	if err != nil {
		return storage.FileRef{}, err
	}

	folderID, createdAny, err := resolve.New(client, o.match).EnsurePath(ctx, folderPath)
	if createdAny {
		o.cache.Invalidate(principalID)
	}
	if err != nil {
		return storage.FileRef{}, err
	}

	ref, err := client.UploadFile(ctx, folderID, filename, mimeType, data)
	if err != nil {
		return storage.FileRef{}, fmt.Errorf("%w: upload %q to %q: %v",
			domain.ErrRemoteUnavailable, filename, folderPath, err)
	}

	o.log.Info("document uploaded",
		"principal", principalID, "path", folderPath, "file", filename, "created_folders", createdAny)
	return ref, nil
}

// RootFolders returns the principal's top-level folders from the shallow
// scan, served from the cache when fresh.
func (o *Organizer) RootFolders(ctx context.Context, accessToken, principalID string) ([]domain.FolderNode, error) {
	snapshot, err := o.shallowScan(ctx, accessToken, principalID)
	if err != nil {
		return nil, err
	}
	return rootFolders(snapshot.Folders), nil
}

// ParentFolderName resolves a top-level folder ID the caller selected to
// its name, using the cached shallow scan when fresh. Unknown IDs yield
// an empty name, not an error.
func (o *Organizer) ParentFolderName(ctx context.Context, accessToken, principalID, folderID string) (string, error) {
	if folderID == "" {
		return "", nil
	}
	roots, err := o.RootFolders(ctx, accessToken, principalID)
	if err != nil {
		return "", err
	}
	for _, f := range roots {
		if f.ID == folderID {
			return f.Name, nil
		}
	}
	return "", nil
}

// BuildDestination assembles the final folder path for an upload from an
// optional parent folder name plus category and year.
func BuildDestination(parentFolder, category string, year int) string {
	var parts []string
	if parentFolder != "" {
		parts = append(parts, parentFolder)
	}
	parts = append(parts, classify.Capitalize(category), fmt.Sprintf("%d", year))
	return strings.Join(parts, "/")
}
