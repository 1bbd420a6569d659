// Package mcp provides a Model Context Protocol server for majordome.
//
// It exposes the heuristic engine (message analysis, theme extraction,
// conversation archival, speaker fingerprinting) as MCP tools, and the
// current entity-store snapshot as an MCP resource, over stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/majordome-ai/majordome/internal/archive"
	"github.com/majordome-ai/majordome/internal/assist"
	"github.com/majordome-ai/majordome/internal/entity"
	"github.com/majordome-ai/majordome/internal/theme"
	"github.com/majordome-ai/majordome/internal/voice"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store      entity.Store
	Engine     *assist.Engine
	Archiver   *archive.Archiver
	ThemeRules []theme.Rule // nil = built-in table
	Version    string       // version string for MCP server info
}

// storeMu serializes all MCP tool calls that touch the entity store.
// The mcp-go library dispatches handlers concurrently via goroutines, and
// the SQLite backend supports only one writer at a time. A global mutex
// keeps archive writes ordered before snapshot reads.
var storeMu sync.Mutex

// NewServer creates a configured MCP server with all majordome tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}
	if cfg.Engine == nil {
		cfg.Engine = assist.NewEngine()
	}
	if cfg.ThemeRules == nil {
		cfg.ThemeRules = theme.DefaultRules
	}

	s := server.NewMCPServer(
		"Majordome",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerAnalyzeTool(s, cfg.Engine, cfg.Store)
	registerThemesTool(s, cfg.ThemeRules)
	registerArchiveTool(s, cfg.Archiver, cfg.Store)
	registerFingerprintTool(s)

	registerSnapshotResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerAnalyzeTool(s *server.MCPServer, engine *assist.Engine, st entity.Store) {
	tool := mcp.NewTool("majordome_analyze",
		mcp.WithDescription("Analyze an assistant message: classify its intent, match it against the user's folders, files, and events, estimate confidence, and suggest follow-up actions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The raw user message to analyze"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		storeMu.Lock()
		defer storeMu.Unlock()

		message, err := req.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError("message is required"), nil
		}

		var snap *entity.Snapshot
		if st != nil {
			snap, err = st.Snapshot(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("snapshot error: %v", err)), nil
			}
		}

		analysis := engine.Analyze(ctx, message, snap)
		data, _ := json.MarshalIndent(analysis, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerThemesTool(s *server.MCPServer, rules []theme.Rule) {
	tool := mcp.NewTool("majordome_themes",
		mcp.WithDescription("Extract topical themes from conversation text. Returns all matching theme tags in table order, or [\"general\"] when nothing matches."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Conversation text to extract themes from"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		themes := theme.ExtractWith([]entity.Message{{Content: text}}, rules)
		data, _ := json.MarshalIndent(themes, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerArchiveTool(s *server.MCPServer, archiver *archive.Archiver, st entity.Store) {
	tool := mcp.NewTool("majordome_archive",
		mcp.WithDescription("Archive a finalized conversation: routes it to a theme-matched folder (created if needed) and stores the formatted transcript as a file. Pass the conversation as JSON."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("conversation",
			mcp.Required(),
			mcp.Description(`Conversation JSON: {"title": "...", "messages": [{"role": "user|assistant", "content": "..."}]}`),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		storeMu.Lock()
		defer storeMu.Unlock()

		if archiver == nil || st == nil {
			return mcp.NewToolResultError("archival requires an entity store"), nil
		}

		raw, err := req.RequireString("conversation")
		if err != nil {
			return mcp.NewToolResultError("conversation is required"), nil
		}

		var conv entity.Conversation
		if err := json.Unmarshal([]byte(raw), &conv); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid conversation JSON: %v", err)), nil
		}
		if len(conv.Messages) == 0 {
			return mcp.NewToolResultError("conversation has no messages"), nil
		}

		snap, err := st.Snapshot(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("snapshot error: %v", err)), nil
		}

		result := archiver.Archive(ctx, conv, snap)
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerFingerprintTool(s *server.MCPServer) {
	tool := mcp.NewTool("majordome_fingerprint",
		mcp.WithDescription("Derive a heuristic speaker pseudo-identity and music-detection flag from a transcribed utterance. Low-entropy placeholder, not a biometric identifier."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Transcribed utterance text"),
		),
		mcp.WithNumber("confidence",
			mcp.Description("Recognition confidence in [0,1] (default: 1.0)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		// RequireFloat errors when the argument is absent; an explicit 0 is
		// a valid confidence and must not fall back to the default.
		confidence := 1.0
		if c, err := req.RequireFloat("confidence"); err == nil && c >= 0 {
			confidence = c
		}

		fp := voice.EstimateFingerprint(text, confidence)
		out := map[string]interface{}{
			"speaker_id":       fp.SpeakerID,
			"pattern_hash":     fp.PatternHash,
			"confidence_score": fp.ConfidenceScore,
			"timestamp":        fp.Timestamp,
			"music_detected":   voice.DetectMusic(text),
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerSnapshotResource(s *server.MCPServer, st entity.Store) {
	resource := mcp.NewResource(
		"majordome://snapshot",
		"Entity Snapshot",
		mcp.WithResourceDescription("The current folders, files, and events known to the entity store."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		storeMu.Lock()
		defer storeMu.Unlock()

		if st == nil {
			return nil, fmt.Errorf("no entity store configured")
		}
		snap, err := st.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}

		// Compact file view: content trimmed to a snippet.
		type fileView struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Snippet string `json:"snippet,omitempty"`
		}
		files := make([]fileView, 0, len(snap.Files))
		for _, f := range snap.Files {
			snippet := f.Content
			if len(snippet) > 200 {
				snippet = snippet[:200] + "..."
			}
			files = append(files, fileView{ID: f.ID, Name: f.Name, Snippet: snippet})
		}

		out := map[string]interface{}{
			"folders": snap.Folders,
			"files":   files,
			"events":  snap.Events,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
