package entity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.majordome/majordome.db"

// SQLiteStore implements Store on a single local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// SQLiteConfig holds configuration for NewSQLiteStore.
type SQLiteConfig struct {
	DBPath string
}

// NewSQLiteStore opens (and if needed creates) the entity database.
// Pass ":memory:" for in-memory databases (testing).
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = ExpandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// migrate creates all tables if they don't exist.
func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS folders (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id         TEXT PRIMARY KEY,
			folder_id  TEXT REFERENCES folders(id),
			name       TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			tags       TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id    TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date  TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}
	return nil
}

// ListFolders returns all folders, oldest first.
func (s *SQLiteStore) ListFolders(ctx context.Context) ([]Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM folders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// CreateFolder inserts a new folder and returns it with its generated id.
func (s *SQLiteStore) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}
	f := &Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Name, f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating folder %q: %w", name, err)
	}
	return f, nil
}

// ListFiles returns all files, oldest first.
func (s *SQLiteStore) ListFiles(ctx context.Context) ([]File, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(folder_id, ''), name, content, tags, created_at
		 FROM files ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		var tags string
		if err := rows.Scan(&f.ID, &f.FolderID, &f.Name, &f.Content, &tags, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &f.Tags); err != nil {
			f.Tags = nil
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// CreateFile inserts a new file and returns it with its generated id.
func (s *SQLiteStore) CreateFile(ctx context.Context, f *File) (*File, error) {
	if f == nil || f.Name == "" {
		return nil, fmt.Errorf("file name cannot be empty")
	}
	created := *f
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	tags, err := json.Marshal(created.Tags)
	if err != nil {
		tags = []byte("[]")
	}
	var folderID interface{}
	if created.FolderID != "" {
		folderID = created.FolderID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO files (id, folder_id, name, content, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, folderID, created.Name, created.Content, string(tags), created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating file %q: %w", f.Name, err)
	}
	return &created, nil
}

// ListEvents returns all events ordered by date.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, date FROM events ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var date sql.NullTime
		if err := rows.Scan(&e.ID, &e.Title, &date); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if date.Valid {
			e.Date = date.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AddEvent inserts an event. Events are read-only to the engine but the
// adapter accepts them so callers can seed calendars.
func (s *SQLiteStore) AddEvent(ctx context.Context, e *Event) (*Event, error) {
	if e == nil || e.Title == "" {
		return nil, fmt.Errorf("event title cannot be empty")
	}
	created := *e
	created.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, date) VALUES (?, ?, ?)`,
		created.ID, created.Title, created.Date)
	if err != nil {
		return nil, fmt.Errorf("adding event %q: %w", e.Title, err)
	}
	return &created, nil
}

// Snapshot assembles the current view of the store.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	folders, err := s.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Folders: folders, Files: files, Events: events}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ExpandPath expands ~ to the home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
