package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/glassboard/internal/model"
)

// Kind identifies a palette command.
type Kind int

const (
	KindNewBoard Kind = iota + 1
	KindDeleteBoard
	KindRenameBoard
	KindToggleDays
	KindStatusFilter
	KindDayFilter
	KindClearDone
	KindBackground
	KindPreset
	KindQuit
)

// Usage lists the accepted command forms.
const Usage = "board new|delete|rename <title> · days · filter all|open|done · " +
	"day all|<weekday> · clear · bg <path|url> · preset none|preset1|preset2|preset3 · quit"

// ErrEmpty is returned for a blank command line.
var ErrEmpty = errors.New("empty command")

// Command is a parsed palette command. Arg carries the title, filter value,
// background source or preset name depending on Kind.
type Command struct {
	Kind Kind
	Arg  string
}

// Parse turns a palette line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch verb {
	case "board":
		return parseBoard(fields[1:], rest)

	case "days":
		return Command{Kind: KindToggleDays}, nil

	case "filter":
		f := model.StatusFilter(strings.ToLower(rest))
		if !f.Valid() {
			return Command{}, fmt.Errorf("unknown status filter %q", rest)
		}
		return Command{Kind: KindStatusFilter, Arg: string(f)}, nil

	case "day":
		arg := strings.ToLower(rest)
		if arg == string(model.DayFilterAll) {
			return Command{Kind: KindDayFilter, Arg: arg}, nil
		}
		d, ok := model.ParseDay(arg)
		if !ok {
			return Command{}, fmt.Errorf("unknown day %q", rest)
		}
		return Command{Kind: KindDayFilter, Arg: string(d)}, nil

	case "clear":
		return Command{Kind: KindClearDone}, nil

	case "bg", "background":
		return Command{Kind: KindBackground, Arg: rest}, nil

	case "preset":
		p := model.BackgroundPreset(strings.ToLower(rest))
		if !p.Valid() {
			return Command{}, fmt.Errorf("unknown preset %q", rest)
		}
		return Command{Kind: KindPreset, Arg: string(p)}, nil

	case "quit", "q":
		return Command{Kind: KindQuit}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q", verb)
}

func parseBoard(args []string, rest string) (Command, error) {
	if len(args) == 0 {
		return Command{}, errors.New("board: expected new, delete or rename")
	}

	title := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
	switch strings.ToLower(args[0]) {
	case "new":
		return Command{Kind: KindNewBoard, Arg: title}, nil
	case "delete":
		return Command{Kind: KindDeleteBoard}, nil
	case "rename":
		if title == "" {
			return Command{}, errors.New("board rename: title is required")
		}
		return Command{Kind: KindRenameBoard, Arg: title}, nil
	}
	return Command{}, fmt.Errorf("board: unknown action %q", args[0])
}
