package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	tmpDir := t.TempDir()

	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	if manager.db == nil {
		t.Error("Database connection is nil")
	}

	// Verify database file was created
	dbPath := filepath.Join(tmpDir, "driveorg.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNewManager_EmptyDir(t *testing.T) {
	_, err := NewManager("")
	if err == nil {
		t.Error("Expected error for empty directory, got nil")
	}
}

func TestSaveAndGetUpload(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	record := UploadRecord{
		PrincipalID: "user-1",
		Title:       "2025-03-01_Invoice_Acme_#INV-100",
		Category:    "invoice",
		FolderPath:  "Work/Invoice/2025",
		DriveFileID: "file-abc",
		DriveURL:    "https://drive.example/file-abc",
		UploadedAt:  time.Now(),
	}

	if err := manager.SaveUpload(record); err != nil {
		t.Fatalf("Failed to save upload: %v", err)
	}

	history, err := manager.GetHistory("user-1", 10)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(history))
	}

	retrieved := history[0]
	if retrieved.Title != record.Title {
		t.Errorf("Expected title %s, got %s", record.Title, retrieved.Title)
	}
	if retrieved.FolderPath != record.FolderPath {
		t.Errorf("Expected path %s, got %s", record.FolderPath, retrieved.FolderPath)
	}
	if retrieved.DriveFileID != record.DriveFileID {
		t.Errorf("Expected file id %s, got %s", record.DriveFileID, retrieved.DriveFileID)
	}
}

func TestSaveUpload_Validation(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	if err := manager.SaveUpload(UploadRecord{DriveFileID: "f"}); err == nil {
		t.Error("Expected error for empty principal id")
	}
	if err := manager.SaveUpload(UploadRecord{PrincipalID: "u"}); err == nil {
		t.Error("Expected error for empty drive file id")
	}
}

func TestGetHistory_IsolatedByPrincipal(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	for i, principal := range []string{"user-1", "user-1", "user-2"} {
		record := UploadRecord{
			PrincipalID: principal,
			Title:       "doc",
			Category:    "other",
			FolderPath:  "Other/2025",
			DriveFileID: "file-" + string(rune('a'+i)),
			UploadedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := manager.SaveUpload(record); err != nil {
			t.Fatalf("Failed to save upload: %v", err)
		}
	}

	history, err := manager.GetHistory("user-1", 10)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 records for user-1, got %d", len(history))
	}

	all, err := manager.GetAllHistory(10)
	if err != nil {
		t.Fatalf("Failed to get all history: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 records total, got %d", len(all))
	}
}

func TestGetHistory_Ordering(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	base := time.Now()
	for i := 0; i < 3; i++ {
		record := UploadRecord{
			PrincipalID: "user-1",
			Title:       "doc",
			Category:    "other",
			FolderPath:  "Other/2025",
			DriveFileID: "file-" + string(rune('a'+i)),
			UploadedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := manager.SaveUpload(record); err != nil {
			t.Fatalf("Failed to save upload: %v", err)
		}
	}

	history, err := manager.GetHistory("user-1", 2)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(history))
	}
	if history[0].DriveFileID != "file-c" {
		t.Errorf("Expected newest record first, got %s", history[0].DriveFileID)
	}

	last, err := manager.GetLastUpload("user-1")
	if err != nil {
		t.Fatalf("Failed to get last upload: %v", err)
	}
	if last == nil || last.DriveFileID != "file-c" {
		t.Errorf("Expected last upload file-c, got %+v", last)
	}
}

func TestGetLastUpload_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	last, err := manager.GetLastUpload("nobody")
	if err != nil {
		t.Fatalf("Failed to get last upload: %v", err)
	}
	if last != nil {
		t.Errorf("Expected nil for principal with no uploads, got %+v", last)
	}
}

func TestGetHistory_InvalidLimit(t *testing.T) {
	tmpDir := t.TempDir()
	manager, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	if _, err := manager.GetHistory("user-1", 0); err == nil {
		t.Error("Expected error for zero limit")
	}
	if _, err := manager.GetAllHistory(-1); err == nil {
		t.Error("Expected error for negative limit")
	}
}
