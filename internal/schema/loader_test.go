package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/store"
	"github.com/nhle/glassboard/tests/testutil"
)

// seqIDs returns a deterministic id generator.
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func newTestLoader(t *testing.T, s store.Storage) (*Loader, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewLoader(s, WithLogger(log), WithIDFunc(seqIDs())), hook
}

func put(t *testing.T, s store.Storage, key, value string) {
	t.Helper()
	require.NoError(t, s.Set(context.Background(), key, value))
}

func TestLoadEmptyStorageSynthesizesDefaultBoard(t *testing.T) {
	l, _ := newTestLoader(t, testutil.NewTestStorage(t))

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionDefault, res.Version)
	require.Len(t, res.Root.Boards, 1)

	b := res.Root.Boards[0]
	assert.Equal(t, "gen-1", b.ID)
	assert.Equal(t, model.DefaultBoardTitle, b.Title)
	assert.Empty(t, b.Tasks)
	assert.Equal(t, model.StatusAll, b.StatusFilter)
	assert.Equal(t, model.DayFilterAll, b.DayFilter)
	assert.False(t, b.UseDays)
	assert.Empty(t, res.Root.BackgroundURL)
}

func TestLoadLegacyTaskList(t *testing.T) {
	s := testutil.NewTestStorage(t)
	put(t, s, model.DefaultLegacyKey, `[{"id":"a","title":"x","done":false,"createdAt":1}]`)
	l, _ := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionLegacyV0, res.Version)
	require.Len(t, res.Root.Boards, 1)

	b := res.Root.Boards[0]
	assert.Equal(t, model.DefaultBoardTitle, b.Title)
	assert.False(t, b.UseDays)
	require.Len(t, b.Tasks, 1)
	assert.Equal(t, model.Task{ID: "a", Title: "x", CreatedAt: 1}, b.Tasks[0])
	assert.Nil(t, b.Tasks[0].Day)
	assert.Equal(t, model.DefaultPreset, res.Root.BackgroundPreset)
}

func TestLoadLegacyNeverTouchesLegacyKey(t *testing.T) {
	s := store.NewMemoryStorage()
	legacy := `[{"id":"a","title":"x","done":true,"createdAt":5,"day":"monday"}]`
	put(t, s, model.DefaultLegacyKey, legacy)
	l, _ := newTestLoader(t, s)

	first := l.Load(context.Background())
	second := NewLoader(s, WithIDFunc(seqIDs())).Load(context.Background())
	assert.Equal(t, first, second)

	got, err := s.Get(context.Background(), model.DefaultLegacyKey)
	require.NoError(t, err)
	assert.Equal(t, legacy, got)

	keys, err := s.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{model.DefaultLegacyKey}, keys)

	require.Len(t, first.Boards[0].Tasks, 1)
	assert.True(t, first.Boards[0].Tasks[0].HasDay(model.Monday))
}

func TestLoadLegacyNullFallsBackToDefault(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultLegacyKey, `null`)
	l, _ := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionDefault, res.Version)
	require.Len(t, res.Root.Boards, 1)
}

func TestLoadFillsMissingUseDays(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultStorageKey, `{"boards":[
		{"id":"b1","title":"Work","todos":[],"statusFilter":"open","dayFilter":"all"},
		{"id":"b2","title":"Home","todos":[],"statusFilter":"all","dayFilter":"all","useDays":true}
	]}`)
	l, _ := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionLegacyV1, res.Version)
	require.Len(t, res.Root.Boards, 2)
	assert.False(t, res.Root.Boards[0].UseDays)
	assert.Equal(t, model.StatusOpen, res.Root.Boards[0].StatusFilter)
	assert.True(t, res.Root.Boards[1].UseDays)
	assert.Equal(t, "", res.Root.BackgroundURL)
	assert.Equal(t, model.DefaultPreset, res.Root.BackgroundPreset)
}

func TestLoadEmptyBoardsFallsThroughToLegacy(t *testing.T) {
	for name, current := range map[string]string{
		"empty boards":    `{"boards":[],"backgroundUrl":"x"}`,
		"missing boards":  `{"backgroundPreset":"preset2"}`,
		"malformed":       `{"boards":[`,
		"wrong shape":     `{"boards":"nope"}`,
		"null":            `null`,
		"every board bad": `{"boards":[{"id":true,"title":"t"},"x"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			s := store.NewMemoryStorage()
			put(t, s, model.DefaultStorageKey, current)
			put(t, s, model.DefaultLegacyKey, `[{"id":"a","title":"old","done":false,"createdAt":1}]`)
			l, _ := newTestLoader(t, s)

			res := l.LoadDetailed(context.Background())
			assert.Equal(t, VersionLegacyV0, res.Version)
			require.Len(t, res.Root.Boards, 1)
			require.Len(t, res.Root.Boards[0].Tasks, 1)
			assert.Equal(t, "old", res.Root.Boards[0].Tasks[0].Title)
		})
	}
}

func TestLoadKeepsBoardsAroundOneBadTask(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultStorageKey, `{"boards":[
		{"id":"w","title":"Work","useDays":false,"statusFilter":"all","dayFilter":"all","todos":[
			{"id":"t1","title":"keep","done":false,"createdAt":10},
			{"id":2,"title":"numeric id","done":true,"createdAt":20},
			{"id":"t3","title":5}
		]},
		{"id":7,"title":"Numbered","useDays":true},
		{"id":"bad","title":["not","a","title"]}
	],"backgroundUrl":"","backgroundPreset":"preset2"}`)
	put(t, s, model.DefaultLegacyKey, `[{"id":"a","title":"old"}]`)
	l, hook := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionCurrent, res.Version)
	assert.Equal(t, model.Preset2, res.Root.BackgroundPreset)
	require.Len(t, res.Root.Boards, 2)

	work := res.Root.Boards[0]
	assert.Equal(t, "w", work.ID)
	assert.Equal(t, "Work", work.Title)
	require.Len(t, work.Tasks, 2)
	assert.Equal(t, "t1", work.Tasks[0].ID)
	assert.Equal(t, "2", work.Tasks[1].ID)
	assert.True(t, work.Tasks[1].Done)

	assert.Equal(t, "7", res.Root.Boards[1].ID)
	assert.True(t, res.Root.Boards[1].UseDays)

	var dropped []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			dropped = append(dropped, e.Message)
		}
	}
	assert.ElementsMatch(t, []string{"dropping unreadable task", "dropping unreadable board"}, dropped)
}

func TestLoadLegacyNumericIDs(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultLegacyKey, `[
		{"id":1700000000000,"title":"keep me","done":false,"createdAt":1700000000000},
		{"id":"s","title":"string id"},
		{"id":{},"title":"object id"}
	]`)
	l, _ := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionLegacyV0, res.Version)
	require.Len(t, res.Root.Boards, 1)
	tasks := res.Root.Boards[0].Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, "1700000000000", tasks[0].ID)
	assert.Equal(t, "keep me", tasks[0].Title)
	assert.Equal(t, int64(1700000000000), tasks[0].CreatedAt)
	assert.Equal(t, "s", tasks[1].ID)
}

func TestLooseIDRejectsNonScalar(t *testing.T) {
	var id looseID
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &id))
	assert.Equal(t, looseID("12.5"), id)
	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Equal(t, looseID(""), id)
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &id))
}

func TestLoadMalformedEverywhereYieldsDefault(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultStorageKey, `not json`)
	put(t, s, model.DefaultLegacyKey, `{"also":"not a list"}`)
	l, hook := newTestLoader(t, s)

	res := l.LoadDetailed(context.Background())
	assert.Equal(t, VersionDefault, res.Version)
	require.Len(t, res.Root.Boards, 1)
	assert.Empty(t, res.Root.Boards[0].Tasks)

	var warned int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned++
		}
	}
	assert.Equal(t, 2, warned)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testutil.NewTestStorage(t)
	l, _ := newTestLoader(t, s)
	ctx := context.Background()

	work := model.NewBoard("b1", "Work")
	work.UseDays = true
	work.DayFilter = model.DayFilterFor(model.Friday)
	work.StatusFilter = model.StatusDone
	work.Tasks = []model.Task{
		{ID: "t2", Title: "ship", Done: true, CreatedAt: 1700000000456, Day: model.DayPtr(model.Friday)},
		{ID: "t1", Title: "plan", CreatedAt: 1700000000123},
	}
	root := model.Root{
		Boards:           []model.Board{work, model.NewBoard("b2", "Home")},
		BackgroundURL:    "https://example.com/bg.jpg",
		BackgroundPreset: model.Preset3,
	}

	require.NoError(t, l.Save(ctx, root))

	res := l.LoadDetailed(ctx)
	assert.Equal(t, VersionCurrent, res.Version)
	assert.Equal(t, root, res.Root)

	// Loading twice is a pass-through.
	assert.Equal(t, res.Root, l.Load(ctx))
}

func TestSaveWritesCurrentKeyOnly(t *testing.T) {
	s := store.NewMemoryStorage()
	l := NewLoader(s, WithKeys("boards", "old"))
	root := model.Root{Boards: []model.Board{model.NewBoard("b1", "x")}, BackgroundPreset: model.Preset2}

	require.NoError(t, l.Save(context.Background(), root))

	raw, err := s.Get(context.Background(), "boards")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Contains(t, decoded, "boards")
	assert.Equal(t, "", decoded["backgroundUrl"])
	assert.Equal(t, "preset2", decoded["backgroundPreset"])

	boards := decoded["boards"].([]interface{})
	board := boards[0].(map[string]interface{})
	assert.Equal(t, []interface{}{}, board["todos"])
	assert.Equal(t, false, board["useDays"])

	_, err = s.Get(context.Background(), "old")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveSurfacesStorageError(t *testing.T) {
	s := store.NewMemoryStorage()
	s.FailWrites = assert.AnError
	l := NewLoader(s)

	err := l.Save(context.Background(), model.Root{Boards: []model.Board{model.NewBoard("b", "x")}})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadReconcilesIdentifiers(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, model.DefaultStorageKey, `{"boards":[
		{"id":"dup","title":"","useDays":false,"todos":[
			{"id":"t","title":"a"},{"id":"t","title":"b"},{"title":"c"}
		]},
		{"id":"dup","title":"Second","useDays":false}
	],"backgroundPreset":"sparkles"}`)
	l, _ := newTestLoader(t, s)

	root := l.Load(context.Background())
	require.Len(t, root.Boards, 2)
	assert.Equal(t, "dup", root.Boards[0].ID)
	assert.Equal(t, model.DefaultBoardTitle, root.Boards[0].Title)
	assert.NotEqual(t, root.Boards[0].ID, root.Boards[1].ID)

	ids := map[string]bool{}
	for _, task := range root.Boards[0].Tasks {
		assert.NotEmpty(t, task.ID)
		ids[task.ID] = true
	}
	assert.Len(t, ids, 3)

	assert.NotNil(t, root.Boards[1].Tasks)
	assert.Equal(t, model.StatusAll, root.Boards[1].StatusFilter)
	assert.Equal(t, model.DayFilterAll, root.Boards[1].DayFilter)
	assert.Equal(t, model.DefaultPreset, root.BackgroundPreset)
}

func TestLoadCustomKeys(t *testing.T) {
	s := store.NewMemoryStorage()
	put(t, s, "legacy-list", `[{"id":"z","title":"from custom legacy","done":false,"createdAt":3}]`)
	l := NewLoader(s, WithKeys("boards-v9", "legacy-list"), WithIDFunc(seqIDs()))

	root := l.Load(context.Background())
	require.Len(t, root.Boards, 1)
	require.Len(t, root.Boards[0].Tasks, 1)
	assert.Equal(t, "z", root.Boards[0].Tasks[0].ID)
}

func TestResetDropsCurrentKeyOnly(t *testing.T) {
	s := testutil.NewTestStorage(t)
	ctx := context.Background()
	put(t, s, model.DefaultLegacyKey, `[{"id":"a","title":"old"}]`)
	l, _ := newTestLoader(t, s)

	require.NoError(t, l.Save(ctx, model.Root{Boards: []model.Board{model.NewBoard("b", "Saved")}}))
	keys, err := l.StoredKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{model.DefaultStorageKey, model.DefaultLegacyKey}, keys)

	require.NoError(t, l.Reset(ctx))
	keys, err = l.StoredKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{model.DefaultLegacyKey}, keys)

	res := l.LoadDetailed(ctx)
	assert.Equal(t, VersionLegacyV0, res.Version)
	assert.Equal(t, "old", res.Root.Boards[0].Tasks[0].Title)

	// Resetting again is harmless.
	require.NoError(t, l.Reset(ctx))
}
