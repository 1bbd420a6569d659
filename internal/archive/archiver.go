// Package archive persists finalized conversations into the entity store
// as theme-routed transcript files.
//
// The two store writes (folder, then file) are sequential and not
// transactional: a folder can be created and the file write still fail,
// leaving the folder behind. Callers tolerate that partial state, and
// concurrent archivals of one theme can race to create duplicate folders.
// Both are accepted best-effort behavior; serialize per theme externally if
// stronger guarantees are needed.
package archive

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/majordome-ai/majordome/internal/entity"
	"github.com/majordome-ai/majordome/internal/theme"
)

// folderPrefix names newly created archive folders.
const folderPrefix = "Conversations - "

// Result is the outcome of one archival. Store failures surface here, never
// as a raised error: the archiver's contract is "result, not throw".
type Result struct {
	Success  bool           `json:"success"`
	Folder   *entity.Folder `json:"folder,omitempty"`
	FileName string         `json:"file_name,omitempty"`
	Themes   []string       `json:"themes,omitempty"`
	Err      string         `json:"error,omitempty"`
}

// Archiver writes conversation transcripts through an entity store.
type Archiver struct {
	store entity.Store
	rules []theme.Rule
	log   *zap.Logger
	now   func() time.Time
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithThemeRules overrides the built-in theme table.
func WithThemeRules(rules []theme.Rule) Option {
	return func(a *Archiver) { a.rules = rules }
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Archiver) { a.log = log }
}

// withClock fixes the clock, for tests.
func withClock(now func() time.Time) Option {
	return func(a *Archiver) { a.now = now }
}

// New creates an Archiver over the given store.
func New(store entity.Store, opts ...Option) *Archiver {
	a := &Archiver{
		store: store,
		rules: theme.DefaultRules,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Archive extracts the conversation's themes, resolves or creates the
// target folder, and writes the formatted transcript as a file entity.
func (a *Archiver) Archive(ctx context.Context, conv entity.Conversation, snap *entity.Snapshot) Result {
	themes := theme.ExtractWith(conv.Messages, a.rules)

	folder, err := a.FindOrCreateFolder(ctx, themes, snap)
	if err != nil {
		a.log.Warn("archive: folder resolution failed", zap.Error(err))
		return Result{Themes: themes, Err: err.Error()}
	}

	now := a.now()
	file := &entity.File{
		FolderID: folder.ID,
		Name:     FileName(now),
		Content:  FormatTranscript(conv, now),
		Tags:     themes,
	}
	created, err := a.store.CreateFile(ctx, file)
	if err != nil {
		// The folder may already exist at this point; that partial state
		// is accepted, no rollback.
		a.log.Warn("archive: file creation failed", zap.String("folder", folder.Name), zap.Error(err))
		return Result{Folder: folder, Themes: themes, Err: err.Error()}
	}

	a.log.Info("conversation archived",
		zap.String("folder", folder.Name),
		zap.String("file", created.Name),
		zap.Strings("themes", themes))

	return Result{
		Success:  true,
		Folder:   folder,
		FileName: created.Name,
		Themes:   themes,
	}
}

// FindOrCreateFolder prefers an existing folder whose name contains any of
// the themes (case-insensitive, themes in order) and only then creates
// "Conversations - <firstTheme>". Best-effort idempotency: concurrent calls
// can still create duplicates.
func (a *Archiver) FindOrCreateFolder(ctx context.Context, themes []string, snap *entity.Snapshot) (*entity.Folder, error) {
	var folders []entity.Folder
	if snap != nil {
		folders = snap.Folders
	}

	for _, th := range themes {
		lower := strings.ToLower(th)
		for _, f := range folders {
			if strings.Contains(strings.ToLower(f.Name), lower) {
				found := f
				return &found, nil
			}
		}
	}

	name := folderPrefix + theme.FallbackTheme
	if len(themes) > 0 {
		name = folderPrefix + themes[0]
	}
	return a.store.CreateFolder(ctx, name)
}
