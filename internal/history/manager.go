package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Manager persists the upload history
type Manager struct {
	db *sql.DB
}

// UploadRecord represents a single organized document upload
type UploadRecord struct {
	ID          int64
	PrincipalID string
	Title       string
	Category    string
	FolderPath  string
	DriveFileID string
	DriveURL    string
	UploadedAt  time.Time
}

// NewManager creates a new history manager
func NewManager(dataDir string) (*Manager, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "driveorg.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Limit connection pool to prevent "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Enable WAL mode for better concurrency and set busy timeout
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	manager := &Manager{db: db}

	if err := manager.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return manager, nil
}

// initSchema creates the database schema
func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS uploads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		principal_id TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		folder_path TEXT NOT NULL,
		drive_file_id TEXT NOT NULL,
		drive_url TEXT,
		uploaded_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_uploads_principal_time ON uploads(principal_id, uploaded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_uploads_category ON uploads(category);
	`

	_, err := m.db.Exec(schema)
	return err
}

// SaveUpload records an organized document upload
func (m *Manager) SaveUpload(record UploadRecord) error {
	if record.PrincipalID == "" {
		return fmt.Errorf("principal id cannot be empty")
	}
	if record.DriveFileID == "" {
		return fmt.Errorf("drive file id cannot be empty")
	}

	query := `
		INSERT INTO uploads (principal_id, title, category, folder_path, drive_file_id, drive_url, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		record.PrincipalID,
		record.Title,
		record.Category,
		record.FolderPath,
		record.DriveFileID,
		record.DriveURL,
		record.UploadedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save upload record: %w", err)
	}

	return nil
}

// GetHistory retrieves upload history for a principal
func (m *Manager) GetHistory(principalID string, limit int) ([]UploadRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT id, principal_id, title, category, folder_path, drive_file_id, drive_url, uploaded_at
		FROM uploads
		WHERE principal_id = ?
		ORDER BY uploaded_at DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, principalID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetLastUpload retrieves the most recent upload for a principal
func (m *Manager) GetLastUpload(principalID string) (*UploadRecord, error) {
	query := `
		SELECT id, principal_id, title, category, folder_path, drive_file_id, drive_url, uploaded_at
		FROM uploads
		WHERE principal_id = ?
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	var record UploadRecord
	err := m.db.QueryRow(query, principalID).Scan(
		&record.ID,
		&record.PrincipalID,
		&record.Title,
		&record.Category,
		&record.FolderPath,
		&record.DriveFileID,
		&record.DriveURL,
		&record.UploadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // No upload yet
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query last upload: %w", err)
	}

	return &record, nil
}

// GetAllHistory retrieves upload history across all principals
func (m *Manager) GetAllHistory(limit int) ([]UploadRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT id, principal_id, title, category, folder_path, drive_file_id, drive_url, uploaded_at
		FROM uploads
		ORDER BY uploaded_at DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query all history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]UploadRecord, error) {
	var records []UploadRecord
	for rows.Next() {
		var record UploadRecord
		err := rows.Scan(
			&record.ID,
			&record.PrincipalID,
			&record.Title,
			&record.Category,
			&record.FolderPath,
			&record.DriveFileID,
			&record.DriveURL,
			&record.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
