package domain

import "testing"

func TestBuildTree(t *testing.T) {
	folders := []FolderNode{
		{ID: "w", Name: "Work", Path: "Work", Depth: 0},
		{ID: "p", Name: "Personal", Path: "Personal", Depth: 0},
		{ID: "r", Name: "Resumes", Path: "Work/Resumes", Depth: 1, ParentIDs: []string{"w"}},
		{ID: "y", Name: "2025", Path: "Work/Resumes/2025", Depth: 2, ParentIDs: []string{"r"}},
	}

	roots := BuildTree(folders)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	work := roots[0]
	if work.Name != "Work" {
		t.Fatalf("first root = %q, want Work", work.Name)
	}
	if len(work.Children) != 1 || work.Children[0].Name != "Resumes" {
		t.Fatalf("Work children = %+v", work.Children)
	}
	resumes := work.Children[0]
	if len(resumes.Children) != 1 || resumes.Children[0].Name != "2025" {
		t.Errorf("Resumes children = %+v", resumes.Children)
	}
	if len(roots[1].Children) != 0 {
		t.Errorf("Personal should have no children, got %d", len(roots[1].Children))
	}
}

func TestBuildTree_MultiParentUsesFirst(t *testing.T) {
	folders := []FolderNode{
		{ID: "a", Name: "A", Path: "A", Depth: 0},
		{ID: "b", Name: "B", Path: "B", Depth: 0},
		{ID: "c", Name: "C", Path: "A/C", Depth: 1, ParentIDs: []string{"a", "b"}},
	}

	roots := BuildTree(folders)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if len(roots[0].Children) != 1 {
		t.Errorf("A should hold C, got %d children", len(roots[0].Children))
	}
	if len(roots[1].Children) != 0 {
		t.Errorf("B must not also hold C, got %d children", len(roots[1].Children))
	}
}

func TestBuildTree_UnknownParentBecomesRoot(t *testing.T) {
	folders := []FolderNode{
		{ID: "deep", Name: "Deep", Path: "Deep", Depth: 3, ParentIDs: []string{"unscanned"}},
	}

	roots := BuildTree(folders)
	if len(roots) != 1 || roots[0].Name != "Deep" {
		t.Errorf("node with unscanned parent should become a root, got %+v", roots)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	if roots := BuildTree(nil); len(roots) != 0 {
		t.Errorf("expected no roots, got %d", len(roots))
	}
}

func TestNameMatch(t *testing.T) {
	tests := []struct {
		match NameMatch
		a, b  string
		want  bool
	}{
		{MatchExact, "Work", "Work", true},
		{MatchExact, "Work", "work", false},
		{MatchFold, "Work", "work", true},
		{MatchFold, "Work", "WORK", true},
		{MatchFold, "Work", "Works", false},
	}
	for _, tt := range tests {
		if got := tt.match.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("match(%v).Equal(%q, %q) = %v, want %v", tt.match, tt.a, tt.b, got, tt.want)
		}
	}
}
