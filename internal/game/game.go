// Package game is the Ebiten viewer: it ticks a driver once per frame,
// draws the projected scene and maps keys and the mouse onto stimuli.
package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Neural-Entity/internal/driver"
	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/scene"
)

const (
	sceneWidth  = 960
	sceneHeight = 720

	// hudScale is the integer upscale applied to HUD text.
	hudScale = 2

	// reportEvery is how often the reporter samples, in ticks.
	reportEvery = 60

	// shakeKick is the acceleration total fed to the tracker by the shake key.
	shakeKick = 20
)

// keyBinding maps one key to a stimulus.
type keyBinding struct {
	key  ebiten.Key
	stim entity.Stimulus
}

var sequenceKeys = []keyBinding{
	{ebiten.Key1, entity.Stimulus{Sequence: "love", Pulse: 0.6, Emotion: "happy"}},
	{ebiten.Key2, entity.Stimulus{Sequence: "ai", Pulse: 0.5, Emotion: "curious"}},
	{ebiten.Key3, entity.Stimulus{Sequence: "code", Pulse: 0.5, Emotion: "thinking"}},
	{ebiten.Key4, entity.Stimulus{Sequence: "cosmic", Pulse: 0.5, Emotion: "peaceful"}},
	{ebiten.Key5, entity.Stimulus{Sequence: "life", Pulse: 0.5, Emotion: "happy"}},
	{ebiten.Key6, entity.Stimulus{Sequence: "hire", Pulse: 0.7, Emotion: "excited"}},
}

var emotionKeys = []keyBinding{
	{ebiten.KeyQ, entity.Stimulus{Emotion: "neutral"}},
	{ebiten.KeyW, entity.Stimulus{Emotion: "happy", Pulse: 0.3}},
	{ebiten.KeyE, entity.Stimulus{Emotion: "curious", Pulse: 0.2}},
	{ebiten.KeyR, entity.Stimulus{Emotion: "sad"}},
	{ebiten.KeyT, entity.Stimulus{Emotion: "angry", Pulse: 0.5, MorphBoost: 0.3}},
	{ebiten.KeyY, entity.Stimulus{Emotion: "surprised", Pulse: 0.8}},
	{ebiten.KeyU, entity.Stimulus{Emotion: "thinking"}},
	{ebiten.KeyI, entity.Stimulus{Emotion: "peaceful"}},
	{ebiten.KeyO, entity.Stimulus{Emotion: "excited", Pulse: 0.6}},
}

var presetKeys = []keyBinding{
	{ebiten.KeyA, entity.Stimulus{Shape: "default"}},
	{ebiten.KeyS, entity.Stimulus{Shape: "brain", MorphBoost: 0.2}},
	{ebiten.KeyD, entity.Stimulus{Shape: "crystal", MorphBoost: 0.2}},
	{ebiten.KeyF, entity.Stimulus{Shape: "reaching", MorphBoost: 0.2}},
	{ebiten.KeyG, entity.Stimulus{Shape: "organic", MorphBoost: 0.2}},
	{ebiten.KeyH, entity.Stimulus{Shape: "aggressive", MorphBoost: 0.3, Pulse: 0.3}},
	{ebiten.KeyJ, entity.Stimulus{Shape: "cosmic", MorphBoost: 0.2}},
}

var pulseKey = keyBinding{ebiten.KeySpace, entity.Stimulus{Pulse: 0.8, MorphBoost: 0.2}}

// Game implements ebiten.Game around one driver.
type Game struct {
	width  int
	height int

	drv         *driver.Driver
	builder     *scene.Builder
	reporter    *driver.Reporter
	reactionLog *ReactionLog
	logged      int // SimLog entries already mirrored into reactionLog

	paused  bool
	typing  bool
	showHUD bool

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	prevCursorX   int
	prevCursorY   int
	cursorInside  bool

	// HUD text is rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image
}

// New builds a viewer for cfg.
func New(cfg driver.Config) *Game {
	g := &Game{
		width:       sceneWidth + logPanelWidth,
		height:      sceneHeight,
		drv:         driver.New(cfg, driver.NewSimLog(false)),
		builder:     scene.NewBuilder(),
		reporter:    driver.NewReporter(0, false),
		reactionLog: NewReactionLog(),
		showHUD:     true,
		prevKeys:    make(map[ebiten.Key]bool),
	}
	if cfg.Profile == driver.ProfileConstrained {
		g.builder.MaxShellPoints = 1200
	}
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.reactionLog.Add(0, "viewer", fmt.Sprintf("profile %s seed %d", cfg.Profile, cfg.Seed))
	return g
}

func (g *Game) Update() error {
	g.handleInput()

	if !g.paused {
		g.drv.Tick(1 / float64(ebiten.TPS()))
		if g.drv.CurrentTick()%reportEvery == 0 {
			g.reporter.Collect(g.drv)
		}
	}
	g.syncLog()
	return nil
}

// syncLog mirrors SimLog entries recorded since the last call.
func (g *Game) syncLog() {
	entries := g.drv.SimLog.Entries()
	for _, e := range entries[g.logged:] {
		g.reactionLog.AddSimEntry(e)
	}
	g.logged = len(entries)
}

// pressed reports a key going down this frame.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput maps keys (edge-triggered) and the mouse onto the driver.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	for _, group := range [][]keyBinding{sequenceKeys, emotionKeys, presetKeys, {pulseKey}} {
		for _, kb := range group {
			if g.pressed(currentKeys, kb.key) {
				g.drv.Stimulate(kb.stim, "key")
			}
		}
	}

	if g.pressed(currentKeys, ebiten.KeyTab) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(currentKeys, ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.pressed(currentKeys, ebiten.KeyK) {
		g.typing = !g.typing
		g.drv.SetTyping(g.typing)
		g.reactionLog.Add(g.drv.CurrentTick(), "viewer", fmt.Sprintf("typing %t", g.typing))
	}
	if g.pressed(currentKeys, ebiten.KeyX) {
		if g.drv.Tracker.Shake(shakeKick) {
			g.reactionLog.Add(g.drv.CurrentTick(), "viewer", "shake")
		}
	}
	if g.pressed(currentKeys, ebiten.KeyC) {
		g.copyDebugReport()
	}

	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < sceneWidth && my < sceneHeight
	switch {
	case inside && (mx != g.prevCursorX || my != g.prevCursorY || !g.cursorInside):
		g.drv.Tracker.MoveClient(float64(mx), float64(my), sceneWidth, sceneHeight)
	case !inside && g.cursorInside:
		g.drv.Tracker.Leave()
	}
	g.prevCursorX, g.prevCursorY, g.cursorInside = mx, my, inside

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.prevMouseLeft && inside {
			g.drv.Click(float64(mx), float64(my), sceneWidth, sceneHeight)
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.prevKeys = currentKeys
}

func (g *Game) Draw(screen *ebiten.Image) {
	sc := g.builder.Build(g.drv, sceneWidth, sceneHeight)
	screen.Fill(sc.Background)

	for _, l := range sc.Lines {
		vector.StrokeLine(screen, l.X0, l.Y0, l.X1, l.Y1, 1, l.Color, true)
	}

	// Chromatic aberration: tinted copies of the shells either side.
	shift := float32(g.drv.Frame().Chromatic * sceneWidth)
	for _, p := range sc.Points {
		if p.Layer == scene.LayerShell && shift >= 0.5 {
			fringe := p.Color.A / 3
			vector.FillRect(screen, p.X-shift, p.Y, p.Size, p.Size, color.RGBA{R: fringe, A: fringe}, false)
			vector.FillRect(screen, p.X+shift, p.Y, p.Size, p.Size, color.RGBA{B: fringe, A: fringe}, false)
		}
		if p.Size >= 2 {
			vector.FillCircle(screen, p.X, p.Y, p.Size/2, p.Color, true)
		} else {
			vector.FillRect(screen, p.X, p.Y, p.Size, p.Size, p.Color, false)
		}
	}

	g.reactionLog.Draw(screen, sceneWidth, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", sceneWidth/2-18, 8)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	re := g.drv.Entity.Reaction()
	em := g.drv.Entity.Emotion()
	seq := g.drv.Entity.Sequencer()

	status := "running"
	if g.paused {
		status = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("T=%d %.1fs %s  FPS %.0f", g.drv.CurrentTick(), g.drv.Time(), status, ebiten.ActualFPS()),
		fmt.Sprintf("pulse %.2f  morph %.2f  agit %.2f", re.PulseIntensity, re.MorphBoost, re.Agitation),
		fmt.Sprintf("emotion %s %.2f  seq %s", em.Current, em.Intensity, seq.Phase()),
		fmt.Sprintf("typing %t  pulses %d", g.typing, g.drv.Field.ActivePulses()),
		"[1-6] sequences  [Space] pulse",
		"[QWERTYUIO] emotions",
		"[ASDFGHJ] shape presets",
		"[K] typing [X] shake [P] pause",
		"[C] copy report  [Tab] HUD",
	}

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 4, G: 8, B: 14, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, colornames.Darkslategray, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, colornames.Teal, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
