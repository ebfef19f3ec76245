package suggest

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
)

// categoryAffinities maps a document category to folder names users
// commonly file it under, in preference order.
var categoryAffinities = map[string][]string{
	"invoice":   {"invoices", "finance", "business", "work", "accounting"},
	"receipt":   {"receipts", "finance", "expenses", "personal"},
	"contract":  {"contracts", "legal", "business", "work"},
	"insurance": {"insurance", "finance", "personal"},
	"tax":       {"taxes", "tax", "finance"},
	"medical":   {"medical", "health", "personal"},
	"school":    {"school", "education", "university"},
	"id":        {"identification", "documents", "personal"},
}

// Heuristic is the deterministic, offline folder matcher used when no
// Gemini key is configured or as a conservative stand-in during tests.
type Heuristic struct{}

// SuggestParent implements Suggester. It first looks for a folder whose
// name equals the category or one of its affinities (case-insensitively),
// then falls back to fuzzy matching against the category name.
func (Heuristic) SuggestParent(ctx context.Context, req Request) (*Suggestion, error) {
	if len(req.RootFolders) == 0 {
		return nil, nil
	}

	names := make([]string, len(req.RootFolders))
	for i, f := range req.RootFolders {
		names[i] = f.Name
	}

	wanted := append([]string{req.Category, req.Category + "s"}, categoryAffinities[req.Category]...)
	for _, want := range wanted {
		for i, name := range names {
			if strings.EqualFold(name, want) {
				f := req.RootFolders[i]
				return &Suggestion{
					FolderID:   f.ID,
					FolderName: f.Name,
					FolderPath: f.Path,
					Confidence: 0.8,
					Reasoning:  "folder name matches document category",
				}, nil
			}
		}
	}

	matches := fuzzy.Find(req.Category, names)
	if len(matches) == 0 {
		return nil, nil
	}
	f := req.RootFolders[matches[0].Index]
	return &Suggestion{
		FolderID:   f.ID,
		FolderName: f.Name,
		FolderPath: f.Path,
		Confidence: 0.7,
		Reasoning:  "closest folder name to document category",
	}, nil
}

var _ Suggester = Heuristic{}
