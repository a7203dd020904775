package model

// BackgroundPreset names one of the built-in background gradients.
type BackgroundPreset string

const (
	PresetNone BackgroundPreset = "none"
	Preset1    BackgroundPreset = "preset1"
	Preset2    BackgroundPreset = "preset2"
	Preset3    BackgroundPreset = "preset3"
)

// DefaultPreset is applied on first run and when a stored preset is absent.
const DefaultPreset = Preset1

// Presets lists every recognized preset.
var Presets = []BackgroundPreset{PresetNone, Preset1, Preset2, Preset3}

// Valid reports whether p is a recognized preset.
func (p BackgroundPreset) Valid() bool {
	for _, known := range Presets {
		if p == known {
			return true
		}
	}
	return false
}

// Root is the complete persisted state.
type Root struct {
	// Boards is never empty and keeps creation order.
	Boards []Board `json:"boards"`

	BackgroundURL    string           `json:"backgroundUrl"`
	BackgroundPreset BackgroundPreset `json:"backgroundPreset"`
}

// BoardIndex returns the position of the board with the given id, or -1.
func (r Root) BoardIndex(id string) int {
	for i, b := range r.Boards {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of r.
func (r Root) Clone() Root {
	out := r
	out.Boards = make([]Board, len(r.Boards))
	for i, b := range r.Boards {
		out.Boards[i] = b.Clone()
	}
	return out
}
