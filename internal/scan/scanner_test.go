package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/storage/memdrive"
)

// seedDrive builds the reference tree:
//
//	Work/
//	  Resumes/
//	Personal/
func seedDrive(t *testing.T) *memdrive.Drive {
	t.Helper()
	d := memdrive.New()
	work := d.MustAddFolder("", "Work")
	d.MustAddFolder("", "Personal")
	d.MustAddFolder(work, "Resumes")
	return d
}

func TestScan_DepthZero(t *testing.T) {
	d := seedDrive(t)
	result, err := NewScanner(d).Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(result.Folders))
	}
	for _, f := range result.Folders {
		if f.Depth != 0 {
			t.Errorf("folder %q has depth %d, want 0", f.Name, f.Depth)
		}
		if f.Path != f.Name {
			t.Errorf("folder %q has path %q, want bare name", f.Name, f.Path)
		}
	}
}

func TestScan_DepthOne(t *testing.T) {
	d := seedDrive(t)
	result, err := NewScanner(d).Scan(context.Background(), 1)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []struct {
		name  string
		depth int
		path  string
	}{
		{"Work", 0, "Work"},
		{"Personal", 0, "Personal"},
		{"Resumes", 1, "Work/Resumes"},
	}
	if len(result.Folders) != len(want) {
		t.Fatalf("expected %d folders, got %d: %+v", len(want), len(result.Folders), result.Folders)
	}
	for i, w := range want {
		got := result.Folders[i]
		if got.Name != w.name || got.Depth != w.depth || got.Path != w.path {
			t.Errorf("folder[%d] = {%s %d %s}, want {%s %d %s}",
				i, got.Name, got.Depth, got.Path, w.name, w.depth, w.path)
		}
	}

	wantPaths := []string{"Work", "Personal", "Work/Resumes"}
	if len(result.Paths) != len(wantPaths) {
		t.Fatalf("expected paths %v, got %v", wantPaths, result.Paths)
	}
	for i, p := range wantPaths {
		if result.Paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, result.Paths[i], p)
		}
	}
}

func TestScan_EmptyRoot(t *testing.T) {
	d := memdrive.New()
	result, err := NewScanner(d).Scan(context.Background(), 1)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Folders) != 0 || len(result.Paths) != 0 {
		t.Errorf("expected empty result, got %d folders, %d paths",
			len(result.Folders), len(result.Paths))
	}
}

func TestScan_RemoteFailureAborts(t *testing.T) {
	d := seedDrive(t)
	d.FailList = errors.New("boom")

	result, err := NewScanner(d).Scan(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
	if result != nil {
		t.Errorf("expected no partial result, got %+v", result)
	}
}

func TestScan_CallCountBoundedByDepth(t *testing.T) {
	d := seedDrive(t)

	if _, err := NewScanner(d).Scan(context.Background(), 0); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	// Depth 0 needs exactly one listing: the root.
	if d.ListCalls != 1 {
		t.Errorf("depth-0 scan made %d list calls, want 1", d.ListCalls)
	}

	d.ListCalls = 0
	if _, err := NewScanner(d).Scan(context.Background(), 1); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	// Root plus one call per depth-0 folder.
	if d.ListCalls != 3 {
		t.Errorf("depth-1 scan made %d list calls, want 3", d.ListCalls)
	}
}
