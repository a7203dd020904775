package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/store"
)

// Loader reads and writes the persisted root in a Storage.
type Loader struct {
	storage   store.Storage
	key       string
	legacyKey string
	log       logrus.FieldLogger
	newID     func() string
}

// Option configures a Loader.
type Option func(*Loader)

// WithKeys overrides the current and legacy storage keys.
func WithKeys(key, legacyKey string) Option {
	return func(l *Loader) {
		if key != "" {
			l.key = key
		}
		if legacyKey != "" {
			l.legacyKey = legacyKey
		}
	}
}

// WithLogger sets the logger used for swallowed decode errors.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loader) { l.log = log }
}

// WithIDFunc sets the generator for synthesized board and task ids.
func WithIDFunc(fn func() string) Option {
	return func(l *Loader) { l.newID = fn }
}

// NewLoader returns a Loader over s using the default storage keys.
func NewLoader(s store.Storage, opts ...Option) *Loader {
	l := &Loader{
		storage:   s,
		key:       model.DefaultStorageKey,
		legacyKey: model.DefaultLegacyKey,
		log:       logrus.StandardLogger(),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadResult is a loaded root together with the generation it came from.
type LoadResult struct {
	Root    model.Root
	Version Version
}

// Load returns a valid current-shape root. It never fails: unusable data
// yields a single empty default board.
func (l *Loader) Load(ctx context.Context) model.Root {
	return l.LoadDetailed(ctx).Root
}

// LoadDetailed is Load that also reports which generation was found.
func (l *Loader) LoadDetailed(ctx context.Context) LoadResult {
	p := l.decodeCurrent(ctx)
	if p == nil {
		p = l.decodeLegacy(ctx)
	}
	if p == nil {
		l.log.WithField("key", l.key).Info("no stored boards, starting with a default board")
		return LoadResult{Root: l.defaultRoot(), Version: VersionDefault}
	}

	root := p.normalize(l.newID)
	l.log.WithFields(logrus.Fields{
		"version": p.version(),
		"boards":  len(root.Boards),
	}).Debug("loaded boards")
	return LoadResult{Root: root, Version: p.version()}
}

// Save serializes root and replaces the value under the current key.
func (l *Loader) Save(ctx context.Context, root model.Root) error {
	data, err := Encode(root)
	if err != nil {
		return err
	}
	if err := l.storage.Set(ctx, l.key, string(data)); err != nil {
		return fmt.Errorf("saving boards: %w", err)
	}
	return nil
}

// Reset deletes the current-key payload so the next Load migrates from the
// legacy key or starts over. The legacy key is left alone.
func (l *Loader) Reset(ctx context.Context) error {
	if err := l.storage.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("resetting boards: %w", err)
	}
	return nil
}

// StoredKeys lists the keys present in the underlying storage.
func (l *Loader) StoredKeys(ctx context.Context) ([]string, error) {
	keys, err := l.storage.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

// Encode serializes root in the current persisted shape.
func Encode(root model.Root) ([]byte, error) {
	boards := root.Boards
	if boards == nil {
		boards = []model.Board{}
	}
	out := model.Root{
		Boards:           make([]model.Board, len(boards)),
		BackgroundURL:    root.BackgroundURL,
		BackgroundPreset: root.BackgroundPreset,
	}
	for i, b := range boards {
		out.Boards[i] = b
		if out.Boards[i].Tasks == nil {
			out.Boards[i].Tasks = []model.Task{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding boards: %w", err)
	}
	return data, nil
}

// decodeCurrent returns nil when the current key is absent, malformed, or
// holds no boards.
func (l *Loader) decodeCurrent(ctx context.Context) payload {
	data, ok := l.read(ctx, l.key)
	if !ok {
		return nil
	}
	log := l.log.WithField("key", l.key)

	raw, err := decodeRoot(data, log)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable boards payload")
		return nil
	}
	if raw == nil || len(raw.Boards) == 0 {
		log.Debug("boards payload has no boards")
		return nil
	}
	return classify(*raw)
}

// decodeLegacy returns nil when the legacy key is absent, malformed, or null.
func (l *Loader) decodeLegacy(ctx context.Context) payload {
	data, ok := l.read(ctx, l.legacyKey)
	if !ok {
		return nil
	}
	log := l.log.WithField("key", l.legacyKey)

	tasks, err := decodeLegacyList(data, log)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable legacy task list")
		return nil
	}
	log.WithField("tasks", len(tasks)).Info("migrating legacy task list into a board")
	return legacyV0{tasks: tasks}
}

// read fetches key, treating every storage failure as absence.
func (l *Loader) read(ctx context.Context, key string) ([]byte, bool) {
	v, err := l.storage.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("reading storage failed")
		return nil, false
	}
	if v == "" {
		return nil, false
	}
	return []byte(v), true
}

func (l *Loader) defaultRoot() model.Root {
	return model.Root{
		Boards:           []model.Board{model.NewBoard(l.newID(), model.DefaultBoardTitle)},
		BackgroundPreset: model.DefaultPreset,
	}
}
