package suggest

import (
	"context"
	"strings"
	"testing"

	"github.com/ptiller/driveorg/internal/domain"
)

func rootFolders() []domain.FolderNode {
	return []domain.FolderNode{
		{ID: "f1", Name: "Finance", Path: "Finance", Depth: 0},
		{ID: "f2", Name: "Personal", Path: "Personal", Depth: 0},
		{ID: "f3", Name: "Work", Path: "Work", Depth: 0},
	}
}

func TestMatchReply_AcceptsConfidentMatch(t *testing.T) {
	reply := "FOLDER: Finance\nCONFIDENCE: 0.9\nREASONING: Invoices are financial documents"

	got := matchReply(reply, rootFolders(), 0.7)
	if got == nil {
		t.Fatal("expected a suggestion")
	}
	if got.FolderID != "f1" || got.FolderName != "Finance" {
		t.Errorf("matched %q (%s), want Finance (f1)", got.FolderName, got.FolderID)
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", got.Confidence)
	}
	if got.Reasoning == "" {
		t.Error("expected reasoning to be carried through")
	}
}

func TestMatchReply_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no match sentinel", "FOLDER: NO_MATCH\nCONFIDENCE: 0.0\nREASONING: nothing fits"},
		{"below threshold", "FOLDER: Finance\nCONFIDENCE: 0.5\nREASONING: weak"},
		{"unknown folder", "FOLDER: Attic\nCONFIDENCE: 0.95\nREASONING: invented"},
		{"unparseable confidence", "FOLDER: Finance\nCONFIDENCE: very sure\nREASONING: x"},
		{"empty reply", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchReply(tt.reply, rootFolders(), 0.7); got != nil {
				t.Errorf("expected nil suggestion, got %+v", got)
			}
		})
	}
}

func TestMatchReply_CaseInsensitiveFolderLookup(t *testing.T) {
	reply := "FOLDER: finance\nCONFIDENCE: 0.8\nREASONING: ok"
	got := matchReply(reply, rootFolders(), 0.7)
	if got == nil || got.FolderName != "Finance" {
		t.Fatalf("expected case-insensitive match on Finance, got %+v", got)
	}
}

func TestHeuristic_AffinityMatch(t *testing.T) {
	got, err := Heuristic{}.SuggestParent(context.Background(), Request{
		Title:       "2025 invoice",
		Category:    "invoice",
		RootFolders: rootFolders(),
	})
	if err != nil {
		t.Fatalf("SuggestParent: %v", err)
	}
	if got == nil || got.FolderName != "Finance" {
		t.Fatalf("expected Finance via affinity, got %+v", got)
	}
}

func TestHeuristic_NoFolders(t *testing.T) {
	got, err := Heuristic{}.SuggestParent(context.Background(), Request{Category: "invoice"})
	if err != nil {
		t.Fatalf("SuggestParent: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil suggestion with no folders, got %+v", got)
	}
}

func TestBuildPrompt_ListsFolders(t *testing.T) {
	prompt := buildPrompt(Request{
		Title:       "March invoice",
		Category:    "invoice",
		RootFolders: rootFolders(),
	})
	for _, want := range []string{"- Finance", "- Personal", "- Work", "NO_MATCH", "invoice", "March invoice"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
