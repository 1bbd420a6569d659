package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/adlio/trello"
)

// TrelloStore implements Store on a Trello board: lists are folders, cards
// are files (the card description is the file content), and cards carrying a
// due date double as calendar events.
type TrelloStore struct {
	client  *trello.Client
	boardID string
}

// TrelloConfig holds the credentials for NewTrelloStore.
type TrelloConfig struct {
	APIKey  string
	Token   string
	BoardID string
}

// NewTrelloStore constructs a board-backed entity store.
func NewTrelloStore(cfg TrelloConfig) (*TrelloStore, error) {
	if cfg.APIKey == "" || cfg.Token == "" || cfg.BoardID == "" {
		return nil, fmt.Errorf("trello store requires api key, token, and board id")
	}
	return &TrelloStore{
		client:  trello.NewClient(cfg.APIKey, cfg.Token),
		boardID: cfg.BoardID,
	}, nil
}

func (t *TrelloStore) board() (*trello.Board, error) {
	b, err := t.client.GetBoard(t.boardID, trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("getting board %s: %w", t.boardID, err)
	}
	return b, nil
}

// ListFolders returns the board's lists as folders.
func (t *TrelloStore) ListFolders(ctx context.Context) ([]Folder, error) {
	b, err := t.board()
	if err != nil {
		return nil, err
	}
	lists, err := b.GetLists(trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("getting lists: %w", err)
	}
	var folders []Folder
	for _, l := range lists {
		folders = append(folders, Folder{ID: l.ID, Name: l.Name})
	}
	return folders, nil
}

// CreateFolder creates a new list on the board.
func (t *TrelloStore) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}
	b, err := t.board()
	if err != nil {
		return nil, err
	}
	l, err := t.client.CreateList(b, name, trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("creating list %q: %w", name, err)
	}
	return &Folder{ID: l.ID, Name: l.Name}, nil
}

// ListFiles returns the board's cards as files.
func (t *TrelloStore) ListFiles(ctx context.Context) ([]File, error) {
	b, err := t.board()
	if err != nil {
		return nil, err
	}
	cards, err := b.GetCards(trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("getting cards: %w", err)
	}
	var files []File
	for _, c := range cards {
		files = append(files, File{
			ID:       c.ID,
			FolderID: c.IDList,
			Name:     c.Name,
			Content:  c.Desc,
		})
	}
	return files, nil
}

// CreateFile creates a card in the folder's list. FolderID must name an
// existing list on the board.
func (t *TrelloStore) CreateFile(ctx context.Context, f *File) (*File, error) {
	if f == nil || f.Name == "" {
		return nil, fmt.Errorf("file name cannot be empty")
	}
	if f.FolderID == "" {
		return nil, fmt.Errorf("trello files require a folder id (list id)")
	}
	card := trello.Card{
		Name: f.Name,
		Desc: f.Content,
	}
	args := trello.Arguments{"idList": f.FolderID}
	if err := t.client.CreateCard(&card, args); err != nil {
		return nil, fmt.Errorf("creating card %q: %w", f.Name, err)
	}
	created := *f
	created.ID = card.ID
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

// ListEvents returns cards that carry a due date, as events.
func (t *TrelloStore) ListEvents(ctx context.Context) ([]Event, error) {
	b, err := t.board()
	if err != nil {
		return nil, err
	}
	cards, err := b.GetCards(trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("getting cards: %w", err)
	}
	var events []Event
	for _, c := range cards {
		if c.Due == nil {
			continue
		}
		events = append(events, Event{ID: c.ID, Title: c.Name, Date: *c.Due})
	}
	return events, nil
}

// Snapshot assembles the current view of the board.
func (t *TrelloStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	folders, err := t.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	files, err := t.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	events, err := t.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Folders: folders, Files: files, Events: events}, nil
}

// Close is a no-op; the Trello client is stateless HTTP.
func (t *TrelloStore) Close() error { return nil }
