package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Neural-Entity/internal/driver"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
	maxLogChars   = (logPanelWidth - 16) / 6 // debug font is 6px wide
)

// ReactionEntry is a single line in the reaction log.
type ReactionEntry struct {
	Tick     int
	Category string // SimLog category, or "viewer"
	Message  string
}

// ReactionLog is a ring buffer of recent events rendered on-screen.
type ReactionLog struct {
	entries []ReactionEntry
	head    int
	count   int
}

// NewReactionLog creates a reaction log with a fixed capacity.
func NewReactionLog() *ReactionLog {
	return &ReactionLog{
		entries: make([]ReactionEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (rl *ReactionLog) Add(tick int, category, msg string) {
	rl.entries[rl.head] = ReactionEntry{
		Tick:     tick,
		Category: category,
		Message:  msg,
	}
	rl.head = (rl.head + 1) % logMaxEntries
	if rl.count < logMaxEntries {
		rl.count++
	}
}

// AddSimEntry mirrors a SimLog entry.
func (rl *ReactionLog) AddSimEntry(e driver.SimLogEntry) {
	msg := e.Key
	if e.Value != "" {
		msg += " " + e.Value
	}
	rl.Add(e.Tick, e.Category, msg)
}

// Len is the number of entries held.
func (rl *ReactionLog) Len() int { return rl.count }

// Recent returns entries in chronological order (oldest first).
func (rl *ReactionLog) Recent() []ReactionEntry {
	result := make([]ReactionEntry, rl.count)
	for i := 0; i < rl.count; i++ {
		idx := (rl.head - rl.count + i + logMaxEntries) % logMaxEntries
		result[i] = rl.entries[idx]
	}
	return result
}

// categoryColor is the dot drawn next to each entry.
func categoryColor(cat string) color.RGBA {
	switch cat {
	case driver.CatReact:
		return colornames.Turquoise
	case driver.CatSequence:
		return colornames.Mediumpurple
	case driver.CatEmotion:
		return colornames.Hotpink
	case driver.CatShape:
		return colornames.Gold
	case driver.CatBurst:
		return colornames.Aqua
	case driver.CatTrigger:
		return colornames.Orange
	default:
		return colornames.Slategray
	}
}

// Draw renders the log panel on the right side of the screen.
func (rl *ReactionLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 6, G: 8, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 30, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 10, G: 24, B: 30, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "REACTION LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 30, G: 80, B: 90, A: 200}, false)

	entries := rl.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 16, G: 34, B: 40, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)

		line := fmt.Sprintf("%5d %s", e.Tick, e.Message)
		if r := []rune(line); len(r) > maxLogChars {
			line = string(r[:maxLogChars-1]) + "~"
		}
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
