package main

import (
	"flag"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Neural-Entity/internal/driver"
	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/scene"
)

const (
	frameInterval = 33 * time.Millisecond
	// cellAspect widens x because terminal cells are about twice as tall as wide.
	cellAspect = 2.0
	statusRows = 1
)

// glyphs are ordered by how much light a cell collected.
var glyphs = []rune(" .:+*#@")

var keyStimuli = map[rune]entity.Stimulus{
	' ': {Pulse: 0.8, MorphBoost: 0.2},
	'1': {Sequence: "love", Pulse: 0.6, Emotion: "happy"},
	'2': {Sequence: "ai", Pulse: 0.5, Emotion: "curious"},
	'3': {Sequence: "code", Pulse: 0.5, Emotion: "thinking"},
	'4': {Sequence: "cosmic", Pulse: 0.5, Emotion: "peaceful"},
	'5': {Sequence: "life", Pulse: 0.5, Emotion: "happy"},
	'6': {Sequence: "hire", Pulse: 0.7, Emotion: "excited"},
	'h': {Emotion: "happy", Pulse: 0.3},
	's': {Emotion: "sad"},
	'a': {Emotion: "angry", Pulse: 0.5, MorphBoost: 0.3},
	'c': {Shape: "crystal", MorphBoost: 0.2},
	'b': {Shape: "brain", MorphBoost: 0.2},
	'o': {Shape: "organic", MorphBoost: 0.2},
	'd': {Shape: "default"},
}

// cell is one rasterised terminal cell.
type cell struct {
	light float64
	color color.RGBA
}

// rasterize accumulates scene points into a cols×rows grid. Each cell keeps
// the colour of its brightest contributor.
func rasterize(sc *scene.Scene, cols, rows int, dst []cell) []cell {
	n := cols * rows
	if cap(dst) < n {
		dst = make([]cell, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = cell{}
	}
	for _, p := range sc.Points {
		x, y := int(p.X), int(p.Y)
		if x < 0 || y < 0 || x >= cols || y >= rows {
			continue
		}
		c := &dst[y*cols+x]
		a := float64(p.Color.A) / 255
		c.light += a
		if prev := c.color.A; p.Color.A >= prev {
			c.color = p.Color
		}
	}
	return dst
}

// glyphFor maps collected light to a glyph.
func glyphFor(light float64) rune {
	i := int(light * 2)
	if i >= len(glyphs) {
		i = len(glyphs) - 1
	}
	if i < 0 {
		i = 0
	}
	if i == 0 && light > 0 {
		i = 1
	}
	return glyphs[i]
}

// unpremultiply restores display brightness for a cell colour.
func unpremultiply(c color.RGBA) (r, g, b int32) {
	if c.A == 0 {
		return 0, 0, 0
	}
	k := 255 / float64(c.A)
	clamp := func(v float64) int32 {
		if v > 255 {
			return 255
		}
		return int32(v)
	}
	return clamp(float64(c.R) * k), clamp(float64(c.G) * k), clamp(float64(c.B) * k)
}

type termView struct {
	screen  tcell.Screen
	drv     *driver.Driver
	builder *scene.Builder
	cells   []cell
	typing  bool
	last    time.Time
}

func (tv *termView) draw() {
	cols, rows := tv.screen.Size()
	rows -= statusRows
	if cols <= 0 || rows <= 0 {
		return
	}
	sc := tv.builder.Build(tv.drv, float64(cols), float64(rows))
	tv.cells = rasterize(sc, cols, rows, tv.cells)

	bg := tcell.NewRGBColor(int32(sc.Background.R), int32(sc.Background.G), int32(sc.Background.B))
	base := tcell.StyleDefault.Background(bg)
	tv.screen.Clear()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := tv.cells[y*cols+x]
			if c.light <= 0 {
				tv.screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			r, g, b := unpremultiply(c.color)
			tv.screen.SetContent(x, y, glyphFor(c.light), nil, base.Foreground(tcell.NewRGBColor(r, g, b)))
		}
	}

	re := tv.drv.Entity.Reaction()
	em := tv.drv.Entity.Emotion()
	status := []rune(" " + em.Current.String() + "  " + tv.drv.Entity.Sequencer().Phase().String() +
		"  pulse " + bar(re.PulseIntensity) + "  [space/1-6/h s a/c b o d] [k]type [x]shake [q]uit")
	st := tcell.StyleDefault.Foreground(tcell.ColorTeal).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		tv.screen.SetContent(x, rows, r, nil, st)
	}
	tv.screen.Show()
}

func bar(v float64) string {
	n := int(v*8 + 0.5)
	out := make([]rune, 8)
	for i := range out {
		out[i] = '-'
		if i < n {
			out[i] = '='
		}
	}
	return string(out)
}

// handleEvent returns false when the user quits.
func (tv *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case 'k':
			tv.typing = !tv.typing
			tv.drv.SetTyping(tv.typing)
		case 'x':
			tv.drv.Tracker.Shake(20)
		default:
			if s, ok := keyStimuli[r]; ok {
				tv.drv.Stimulate(s, "key")
			}
		}
	case *tcell.EventMouse:
		cols, rows := tv.screen.Size()
		rows -= statusRows
		x, y := ev.Position()
		if y >= rows {
			tv.drv.Tracker.Leave()
			return true
		}
		tv.drv.Tracker.MoveClient(float64(x), float64(y), float64(cols), float64(rows))
		if ev.Buttons()&tcell.Button1 != 0 {
			tv.drv.Click(float64(x), float64(y), float64(cols), float64(rows))
		}
	case *tcell.EventResize:
		tv.screen.Sync()
	}
	return true
}

func (tv *termView) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := tv.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !tv.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			tv.drv.Tick(now.Sub(tv.last).Seconds())
			tv.last = now
			tv.draw()
		}
	}
}

func main() {
	var constrained bool
	var seed int64
	flag.BoolVar(&constrained, "constrained", true, "use the small-screen particle and mesh budget")
	flag.Int64Var(&seed, "seed", 42, "RNG seed for the particle field")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	b := scene.NewBuilder()
	b.Aspect = cellAspect
	b.MaxShellPoints = 600
	tv := &termView{
		screen:  screen,
		drv:     driver.New(driver.ConfigFor(driver.ProfileFor(constrained), seed), nil),
		builder: b,
		last:    time.Now(),
	}
	tv.run()
}
