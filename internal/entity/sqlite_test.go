package entity

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_FolderRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateFolder(ctx, "Projets")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if created.ID == "" {
		t.Error("folder id not generated")
	}

	folders, err := store.ListFolders(ctx)
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != created.ID || folders[0].Name != "Projets" {
		t.Errorf("folders = %+v", folders)
	}
}

func TestSQLiteStore_CreateFolderEmptyName(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.CreateFolder(context.Background(), ""); err == nil {
		t.Error("expected error for empty folder name")
	}
}

func TestSQLiteStore_FileRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	folder, err := store.CreateFolder(ctx, "Conversations - projet")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	created, err := store.CreateFile(ctx, &File{
		FolderID: folder.ID,
		Name:     "Conversation_2026-03-14.txt",
		Content:  "# Conversation",
		Tags:     []string{"projet", "finance"},
	})
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if created.ID == "" {
		t.Error("file id not generated")
	}

	files, err := store.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %+v", files)
	}
	got := files[0]
	if got.FolderID != folder.ID || got.Content != "# Conversation" {
		t.Errorf("file = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "projet" || got.Tags[1] != "finance" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestSQLiteStore_FileWithoutFolder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateFile(ctx, &File{Name: "orphan.txt"}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	files, err := store.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0].FolderID != "" {
		t.Errorf("files = %+v", files)
	}
}

func TestSQLiteStore_Events(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	later := Event{Title: "Réunion budget", Date: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)}
	earlier := Event{Title: "Point projet", Date: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	for _, e := range []Event{later, earlier} {
		ev := e
		if _, err := store.AddEvent(ctx, &ev); err != nil {
			t.Fatalf("AddEvent(%q): %v", e.Title, err)
		}
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Title != "Point projet" || events[1].Title != "Réunion budget" {
		t.Errorf("event order = [%q, %q]", events[0].Title, events[1].Title)
	}
	if !events[0].Date.Equal(earlier.Date) {
		t.Errorf("event date = %v, want %v", events[0].Date, earlier.Date)
	}
}

func TestSQLiteStore_EventWithoutDate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO events (id, title, date) VALUES ('e-null', 'Sans date', NULL)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Sans date" {
		t.Fatalf("events = %+v", events)
	}
	if !events[0].Date.IsZero() {
		t.Errorf("date = %v, want zero", events[0].Date)
	}
}

func TestSQLiteStore_Snapshot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	folder, _ := store.CreateFolder(ctx, "Projets")
	store.CreateFile(ctx, &File{FolderID: folder.ID, Name: "notes.txt"})
	store.AddEvent(ctx, &Event{Title: "Réunion"})

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Folders) != 1 || len(snap.Files) != 1 || len(snap.Events) != 1 {
		t.Errorf("snapshot counts = %d/%d/%d, want 1/1/1",
			len(snap.Folders), len(snap.Files), len(snap.Events))
	}
}

func TestExpandPath(t *testing.T) {
	if got := ExpandPath("/var/db/x.db"); got != "/var/db/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
	got := ExpandPath("~/.majordome/majordome.db")
	if got == "~/.majordome/majordome.db" {
		t.Skip("home directory unavailable")
	}
	if filepath.Base(got) != "majordome.db" {
		t.Errorf("expanded = %q", got)
	}
}
