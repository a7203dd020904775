package schema

import (
	"encoding/json"

	"github.com/nhle/glassboard/internal/model"
)

// Version identifies which generation of persisted state was found.
type Version string

const (
	VersionDefault  Version = "default"
	VersionLegacyV0 Version = "legacy-v0"
	VersionLegacyV1 Version = "legacy-v1"
	VersionCurrent  Version = "current"
)

// payload is one decoded generation of persisted state.
type payload interface {
	version() Version
	normalize(newID func() string) model.Root
}

type rawTask struct {
	ID        looseID `json:"id"`
	Title     string  `json:"title"`
	Done      bool    `json:"done"`
	CreatedAt float64 `json:"createdAt"`
	Day       *string `json:"day"`
}

type rawBoard struct {
	ID           looseID           `json:"id"`
	Title        string            `json:"title"`
	Tasks        []json.RawMessage `json:"todos"`
	StatusFilter *string           `json:"statusFilter"`
	DayFilter    *string           `json:"dayFilter"`
	UseDays      *bool             `json:"useDays"`

	tasks []rawTask
}

// rawEnvelope is a boards payload before its boards are checked.
type rawEnvelope struct {
	Boards           []json.RawMessage `json:"boards"`
	BackgroundURL    *string           `json:"backgroundUrl"`
	BackgroundPreset *string           `json:"backgroundPreset"`
}

type rawRoot struct {
	Boards           []rawBoard `json:"boards"`
	BackgroundURL    *string    `json:"backgroundUrl"`
	BackgroundPreset *string    `json:"backgroundPreset"`
}

// legacyV0 is the single flat list written before boards existed.
type legacyV0 struct {
	tasks []rawTask
}

func (legacyV0) version() Version { return VersionLegacyV0 }

func (p legacyV0) normalize(newID func() string) model.Root {
	b := model.NewBoard(newID(), model.DefaultBoardTitle)
	b.Tasks = normalizeTasks(p.tasks)
	return model.Root{
		Boards:           reconcile([]model.Board{b}, newID),
		BackgroundPreset: model.DefaultPreset,
	}
}

// legacyV1 is a boards payload where at least one board has no useDays field.
type legacyV1 struct {
	root rawRoot
}

func (legacyV1) version() Version { return VersionLegacyV1 }

func (p legacyV1) normalize(newID func() string) model.Root {
	return p.root.normalize(newID)
}

// currentV2 is a boards payload with every field of the current generation.
type currentV2 struct {
	root rawRoot
}

func (currentV2) version() Version { return VersionCurrent }

func (p currentV2) normalize(newID func() string) model.Root {
	return p.root.normalize(newID)
}

// classify picks the variant for a parsed boards payload.
func classify(r rawRoot) payload {
	for _, b := range r.Boards {
		if b.UseDays == nil {
			return legacyV1{root: r}
		}
	}
	return currentV2{root: r}
}

func (r rawRoot) normalize(newID func() string) model.Root {
	boards := make([]model.Board, 0, len(r.Boards))
	for _, rb := range r.Boards {
		boards = append(boards, rb.normalize())
	}

	root := model.Root{
		Boards:           reconcile(boards, newID),
		BackgroundPreset: model.DefaultPreset,
	}
	if r.BackgroundURL != nil {
		root.BackgroundURL = *r.BackgroundURL
	}
	if r.BackgroundPreset != nil && model.BackgroundPreset(*r.BackgroundPreset).Valid() {
		root.BackgroundPreset = model.BackgroundPreset(*r.BackgroundPreset)
	}
	return root
}

func (rb rawBoard) normalize() model.Board {
	b := model.NewBoard(string(rb.ID), rb.Title)
	b.Tasks = normalizeTasks(rb.tasks)
	if rb.StatusFilter != nil {
		b.StatusFilter = model.StatusFilter(*rb.StatusFilter)
	}
	if rb.DayFilter != nil {
		b.DayFilter = model.DayFilter(*rb.DayFilter)
	}
	if rb.UseDays != nil {
		b.UseDays = *rb.UseDays
	}
	return b
}

// normalizeTasks converts raw tasks, mapping an absent day to nil. Unknown
// day strings are kept; they never match a day filter.
func normalizeTasks(raw []rawTask) []model.Task {
	tasks := make([]model.Task, 0, len(raw))
	for _, rt := range raw {
		t := model.Task{
			ID:        string(rt.ID),
			Title:     rt.Title,
			Done:      rt.Done,
			CreatedAt: int64(rt.CreatedAt),
		}
		if rt.Day != nil && *rt.Day != "" {
			t.Day = model.DayPtr(model.Day(*rt.Day))
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// reconcile restores identifier invariants: board ids are unique within the
// root, task ids are unique within their board, and no board title is blank.
func reconcile(boards []model.Board, newID func() string) []model.Board {
	seenBoards := make(map[string]struct{}, len(boards))
	for i := range boards {
		b := &boards[i]
		if _, dup := seenBoards[b.ID]; b.ID == "" || dup {
			b.ID = newID()
		}
		seenBoards[b.ID] = struct{}{}

		if b.Title == "" {
			b.Title = model.DefaultBoardTitle
		}

		seenTasks := make(map[string]struct{}, len(b.Tasks))
		for j := range b.Tasks {
			t := &b.Tasks[j]
			if _, dup := seenTasks[t.ID]; t.ID == "" || dup {
				t.ID = newID()
			}
			seenTasks[t.ID] = struct{}{}
		}
	}
	return boards
}
