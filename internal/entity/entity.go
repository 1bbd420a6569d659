// Package entity defines the records the engine reads from the external
// entity store — folders, files, calendar events, and conversations — plus
// the Store interface that store adapters implement.
//
// The engine only ever reads id, name/title, and (for files) content.
// Anything else an adapter carries is its own business.
package entity

import (
	"context"
	"time"
)

// Folder is a named container for files.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// File is a named document, optionally with text content.
type File struct {
	ID        string    `json:"id"`
	FolderID  string    `json:"folder_id,omitempty"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a calendar entry. Only the title matters to the engine.
type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date,omitempty"`
}

// Message is a single turn in a conversation.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Conversation is a finalized chat ready for archival.
type Conversation struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title,omitempty"`
	Messages []Message `json:"messages"`
}

// Snapshot is a read-only view of the user's data, supplied fresh by the
// caller on every engine call. The engine never mutates it and never caches
// it across calls.
type Snapshot struct {
	Folders       []Folder
	Files         []File
	Events        []Event
	Conversations []Conversation
}

// Store is the external entity-store collaborator. Implementations back it
// with SQLite, Trello, or anything else that can list and create records.
type Store interface {
	ListFolders(ctx context.Context) ([]Folder, error)
	CreateFolder(ctx context.Context, name string) (*Folder, error)

	ListFiles(ctx context.Context) ([]File, error)
	CreateFile(ctx context.Context, f *File) (*File, error)

	ListEvents(ctx context.Context) ([]Event, error)

	// Snapshot assembles a Snapshot from the three list calls.
	Snapshot(ctx context.Context) (*Snapshot, error)

	Close() error
}
