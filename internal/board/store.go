// Package board holds the authoritative in-memory boards and applies every
// user mutation to them, persisting the full root after each accepted change.
//
// Mutations are total: unknown ids and blank titles degrade to no-ops and
// report false rather than returning errors. The only hard rule enforced is
// that the last remaining board cannot be deleted.
package board

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/glassboard/internal/model"
)

// Persister writes a full root to durable storage.
type Persister interface {
	Save(ctx context.Context, root model.Root) error
}

// Store owns the live root. It is safe for concurrent use, although the UI
// drives it from a single goroutine.
type Store struct {
	mu          sync.Mutex
	root        model.Root
	persist     Persister
	log         logrus.FieldLogger
	now         func() time.Time
	newID       func() string
	lastSaveErr error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for save failures and mutation traces.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock sets the time source for task creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the generator for board and task ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New takes ownership of a copy of root. A root without boards gets a
// default board so the store starts out valid.
func New(root model.Root, p Persister, opts ...Option) *Store {
	s := &Store{
		root:    root.Clone(),
		persist: p,
		log:     logrus.StandardLogger(),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.root.Boards) == 0 {
		s.root.Boards = []model.Board{model.NewBoard(s.newID(), model.DefaultBoardTitle)}
	}
	if !s.root.BackgroundPreset.Valid() {
		s.root.BackgroundPreset = model.DefaultPreset
	}
	return s
}

// Root returns a deep copy of the current state.
func (s *Store) Root() model.Root {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.Clone()
}

// Boards returns copies of all boards in creation order.
func (s *Store) Boards() []model.Board {
	return s.Root().Boards
}

// Board returns a copy of the board with the given id.
func (s *Store) Board(id string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.root.BoardIndex(id)
	if i < 0 {
		return model.Board{}, false
	}
	return s.root.Boards[i].Clone(), true
}

// Visible returns the board's tasks that pass its filters, in stored order.
func (s *Store) Visible(boardID string) []model.Task {
	b, ok := s.Board(boardID)
	if !ok {
		return nil
	}
	return b.VisibleTasks()
}

// OpenCount returns how many tasks on the board are not done.
func (s *Store) OpenCount(boardID string) int {
	b, ok := s.Board(boardID)
	if !ok {
		return 0
	}
	return b.OpenCount()
}

// LastSaveErr reports the error from the most recent save, if it failed.
func (s *Store) LastSaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// commit persists the root. Callers hold s.mu.
func (s *Store) commit(op string) {
	if s.persist == nil {
		return
	}
	err := s.persist.Save(context.Background(), s.root.Clone())
	s.lastSaveErr = err
	if err != nil {
		s.log.WithError(err).WithField("op", op).Error("saving boards failed")
	}
}

// board returns a pointer into the live root. Callers hold s.mu.
func (s *Store) board(id string) *model.Board {
	i := s.root.BoardIndex(id)
	if i < 0 {
		return nil
	}
	return &s.root.Boards[i]
}

// AddBoard appends a new default board and returns it.
func (s *Store) AddBoard() model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := model.NewBoard(s.newID(), model.NewBoardTitle)
	s.root.Boards = append(s.root.Boards, b)
	s.log.WithField("board_id", b.ID).Debug("board added")
	s.commit("add_board")
	return b.Clone()
}

// DeleteBoard removes the board and its tasks. Deleting the last remaining
// board, or an unknown board, is a no-op.
func (s *Store) DeleteBoard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.root.Boards) <= 1 {
		return false
	}
	i := s.root.BoardIndex(id)
	if i < 0 {
		return false
	}
	s.root.Boards = append(s.root.Boards[:i:i], s.root.Boards[i+1:]...)
	s.log.WithField("board_id", id).Debug("board deleted")
	s.commit("delete_board")
	return true
}

// RenameBoard replaces the title unless the trimmed title is empty.
func (s *Store) RenameBoard(id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	b := s.board(id)
	if b == nil || title == "" {
		return false
	}
	b.Title = title
	s.commit("rename_board")
	return true
}

// ToggleUseDays flips day-mode. Existing day tags and the day filter are
// left untouched when day-mode is turned off.
func (s *Store) ToggleUseDays(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(id)
	if b == nil {
		return false
	}
	b.UseDays = !b.UseDays
	s.commit("toggle_use_days")
	return true
}

// SetStatusFilter replaces the board's status filter.
func (s *Store) SetStatusFilter(id string, f model.StatusFilter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(id)
	if b == nil || !f.Valid() {
		return false
	}
	b.StatusFilter = f
	s.commit("set_status_filter")
	return true
}

// SetDayFilter replaces the board's day filter.
func (s *Store) SetDayFilter(id string, f model.DayFilter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(id)
	if b == nil || !f.Valid() {
		return false
	}
	b.DayFilter = f
	s.commit("set_day_filter")
	return true
}

// AddTask prepends a new task. A blank title creates nothing. The day is
// kept only when the board has day-mode on and the day is recognized.
func (s *Store) AddTask(boardID, title string, day *model.Day) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	b := s.board(boardID)
	if b == nil || title == "" {
		return model.Task{}, false
	}

	t := model.Task{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now().UnixMilli(),
	}
	if b.UseDays && day != nil && day.Valid() {
		t.Day = model.DayPtr(*day)
	}

	tasks := make([]model.Task, 0, len(b.Tasks)+1)
	tasks = append(tasks, t)
	b.Tasks = append(tasks, b.Tasks...)

	s.log.WithFields(logrus.Fields{"board_id": boardID, "task_id": t.ID}).Debug("task added")
	s.commit("add_task")
	return t, true
}

// ToggleTask flips the done flag.
func (s *Store) ToggleTask(boardID, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(boardID)
	if b == nil {
		return false
	}
	i := b.TaskIndex(taskID)
	if i < 0 {
		return false
	}
	b.Tasks[i].Done = !b.Tasks[i].Done
	s.commit("toggle_task")
	return true
}

// EditTaskTitle replaces the title. A blank title deletes the task.
func (s *Store) EditTaskTitle(boardID, taskID, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.DeleteTask(boardID, taskID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(boardID)
	if b == nil {
		return false
	}
	i := b.TaskIndex(taskID)
	if i < 0 {
		return false
	}
	b.Tasks[i].Title = title
	s.commit("edit_task_title")
	return true
}

// DeleteTask removes the task.
func (s *Store) DeleteTask(boardID, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(boardID)
	if b == nil {
		return false
	}
	i := b.TaskIndex(taskID)
	if i < 0 {
		return false
	}
	b.Tasks = append(b.Tasks[:i:i], b.Tasks[i+1:]...)
	s.log.WithFields(logrus.Fields{"board_id": boardID, "task_id": taskID}).Debug("task deleted")
	s.commit("delete_task")
	return true
}

// ClearDone removes every done task from the board, keeping the order of
// the rest, and returns how many were removed. The board is saved even when
// nothing was removed.
func (s *Store) ClearDone(boardID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(boardID)
	if b == nil {
		return 0, false
	}
	kept := make([]model.Task, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	removed := len(b.Tasks) - len(kept)
	b.Tasks = kept
	s.commit("clear_done")
	return removed, true
}

// SetBackgroundURL replaces the background image. Overlapping callers
// resolve as last-writer-wins.
func (s *Store) SetBackgroundURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root.BackgroundURL = url
	s.commit("set_background_url")
}

// SetBackgroundPreset selects a built-in background.
func (s *Store) SetBackgroundPreset(p model.BackgroundPreset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Valid() {
		return false
	}
	s.root.BackgroundPreset = p
	s.commit("set_background_preset")
	return true
}
