package scan

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage/memdrive"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   /   ", nil},
		{"Work", []string{"Work"}},
		{"Work/Resumes", []string{"Work", "Resumes"}},
		{"/Work//Resumes/", []string{"Work", "Resumes"}},
		{" Work / Resumes ", []string{"Work", "Resumes"}},
	}

	for _, tt := range tests {
		got := SplitPath(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestScanChildren_ListsQualifiedPaths(t *testing.T) {
	d := memdrive.New()
	work := d.MustAddFolder("", "Work")
	d.MustAddFolder(work, "Resumes")
	d.MustAddFolder(work, "Invoices")

	nodes, err := NewChildScanner(d, domain.MatchExact).ScanChildren(context.Background(), "Work")
	if err != nil {
		t.Fatalf("ScanChildren: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("expected 2 children, got %d", len(nodes))
	}
	wantPaths := map[string]bool{"Work/Resumes": true, "Work/Invoices": true}
	for _, n := range nodes {
		if !wantPaths[n.Path] {
			t.Errorf("unexpected child path %q", n.Path)
		}
		if n.Depth != 1 {
			t.Errorf("child %q has depth %d, want 1", n.Name, n.Depth)
		}
	}
}

func TestScanChildren_MissingPrefixIsSoft(t *testing.T) {
	d := memdrive.New()
	d.MustAddFolder("", "Work")

	nodes, err := NewChildScanner(d, domain.MatchExact).ScanChildren(context.Background(), "Archive/2024")
	if err != nil {
		t.Fatalf("ScanChildren: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("expected empty result for missing prefix, got %d nodes", len(nodes))
	}
}

func TestScanChildren_CaseFoldPolicy(t *testing.T) {
	d := memdrive.New()
	work := d.MustAddFolder("", "Work")
	d.MustAddFolder(work, "Resumes")

	// Exact matching misses the differently-cased prefix.
	nodes, err := NewChildScanner(d, domain.MatchExact).ScanChildren(context.Background(), "work")
	if err != nil {
		t.Fatalf("ScanChildren: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("exact policy: expected no match for %q, got %d nodes", "work", len(nodes))
	}

	// Folded matching resolves it.
	nodes, err = NewChildScanner(d, domain.MatchFold).ScanChildren(context.Background(), "work")
	if err != nil {
		t.Fatalf("ScanChildren: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "Resumes" {
		t.Errorf("fold policy: expected [Resumes], got %+v", nodes)
	}
}

func TestScanChildren_EmptyPrefixRejected(t *testing.T) {
	d := memdrive.New()
	for _, prefix := range []string{"", "   /   "} {
		_, err := NewChildScanner(d, domain.MatchExact).ScanChildren(context.Background(), prefix)
		if !errors.Is(err, domain.ErrMalformedPath) {
			t.Errorf("ScanChildren(%q): expected ErrMalformedPath, got %v", prefix, err)
		}
	}
}

func TestScanChildren_RemoteFailure(t *testing.T) {
	d := memdrive.New()
	d.MustAddFolder("", "Work")
	d.FailList = errors.New("boom")

	_, err := NewChildScanner(d, domain.MatchExact).ScanChildren(context.Background(), "Work")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
}
