package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"board new", Command{Kind: KindNewBoard}},
		{"board new  Groceries list ", Command{Kind: KindNewBoard, Arg: "Groceries list"}},
		{"board delete", Command{Kind: KindDeleteBoard}},
		{"board rename Home", Command{Kind: KindRenameBoard, Arg: "Home"}},
		{"days", Command{Kind: KindToggleDays}},
		{"filter open", Command{Kind: KindStatusFilter, Arg: "open"}},
		{"FILTER Done", Command{Kind: KindStatusFilter, Arg: "done"}},
		{"day all", Command{Kind: KindDayFilter, Arg: "all"}},
		{"day Fri", Command{Kind: KindDayFilter, Arg: "friday"}},
		{"clear", Command{Kind: KindClearDone}},
		{"bg ~/Pictures/sky.png", Command{Kind: KindBackground, Arg: "~/Pictures/sky.png"}},
		{"bg", Command{Kind: KindBackground}},
		{"preset preset3", Command{Kind: KindPreset, Arg: "preset3"}},
		{"preset none", Command{Kind: KindPreset, Arg: "none"}},
		{"q", Command{Kind: KindQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	for _, line := range []string{
		"board",
		"board move",
		"board rename",
		"filter later",
		"day someday",
		"preset preset9",
		"frobnicate",
	} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}
