// Package assist composes the pure heuristics — intent classification,
// relevance matching, confidence estimation, action suggestion — into a
// single per-message analysis call.
package assist

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/majordome-ai/majordome/internal/entity"
	"github.com/majordome-ai/majordome/internal/intent"
	"github.com/majordome-ai/majordome/internal/relevance"
)

// Analysis is the engine's full read on one message.
type Analysis struct {
	Message    string                    `json:"message"`
	Intent     intent.Intent             `json:"intent"`
	Relevance  relevance.Set             `json:"relevance"`
	Confidence float64                   `json:"confidence"`
	Actions    []intent.ActionSuggestion `json:"actions"`
}

// Engine runs the analysis pipeline. It holds no state the pipeline needs:
// the cache is a throughput optimization, never required for correctness.
type Engine struct {
	rules []intent.Rule
	cache *gocache.Cache
	log   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithIntentRules overrides the built-in intent table.
func WithIntentRules(rules []intent.Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithCache enables a TTL cache of analyses keyed by normalized message
// text. Entries are only valid while the snapshot is stable, so the TTL
// should stay short (seconds, not minutes).
func WithCache(ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = gocache.New(ttl, 2*ttl)
	}
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an Engine with the default rule tables and no cache.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules: intent.DefaultRules,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze classifies the message, matches it against the snapshot, scores
// confidence, and suggests actions. Total: every input yields an Analysis.
func (e *Engine) Analyze(ctx context.Context, message string, snap *entity.Snapshot) Analysis {
	key := strings.ToLower(strings.TrimSpace(message))
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			return cached.(Analysis)
		}
	}

	in := intent.ClassifyWith(message, e.rules)
	set := relevance.FindRelevant(message, snap)
	conf := relevance.EstimateConfidence(message, set)

	a := Analysis{
		Message:    message,
		Intent:     in,
		Relevance:  set,
		Confidence: conf,
		Actions:    intent.SuggestActions(in),
	}

	e.log.Debug("message analyzed",
		zap.String("intent", string(in)),
		zap.Float64("confidence", conf),
		zap.Int("matched_folders", len(set.Folders)),
		zap.Int("matched_files", len(set.Files)),
		zap.Int("matched_events", len(set.Events)))

	if e.cache != nil {
		e.cache.Set(key, a, gocache.DefaultExpiration)
	}
	return a
}
