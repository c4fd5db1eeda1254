// Command boids runs the text swarm in a terminal, driving the flock
// directly without the actor system.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/shape"
)

const (
	frameInterval = 33 * time.Millisecond
	// terminal cells are roughly twice as tall as they are wide
	cellAspect = 2.0
	margin     = 2
)

// glyphs ordered from slowest to fastest
var glyphs = []rune("·•●◆")

type Game struct {
	screen   tcell.Screen
	swarm    *behavior.Swarm
	present  *behavior.Presenter
	settings behavior.Settings
	opts     shape.Options
	pointer  behavior.Pointer

	texts     []string
	textIndex int

	width, height int
	// world units per terminal column
	unitsPerCol float64
	paused      bool
}

func NewGame(texts []string, n int, seed uint64) (*Game, error) {
	settings := behavior.DefaultSettings()
	opts := shape.DefaultOptions()
	opts.Seed = seed
	opts.MaxExtent = settings.BoundarySize * 0.9

	homes, err := shape.TextTargets(texts[0], n, opts)
	if err != nil {
		return nil, err
	}
	swarm, err := behavior.NewSwarm(homes, settings, seed)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	g := &Game{
		screen:   screen,
		swarm:    swarm,
		present:  behavior.NewPresenter(swarm.Len(), behavior.DefaultPalette()),
		settings: settings,
		opts:     opts,
		texts:    texts,
	}
	g.handleResize()
	return g, nil
}

// handleResize fits the current text into the terminal.
func (g *Game) handleResize() {
	g.width, g.height = g.screen.Size()
	var maxX, maxY float64
	for _, b := range g.swarm.Boids {
		maxX = math.Max(maxX, math.Abs(b.Home.X))
		maxY = math.Max(maxY, math.Abs(b.Home.Y))
	}
	cols := float64(max(g.width-2*margin, 1))
	rows := float64(max(g.height-2*margin-1, 1))
	g.unitsPerCol = math.Max(2*maxX/cols, 2*maxY/(rows*cellAspect))
	if g.unitsPerCol <= 0 {
		g.unitsPerCol = 1
	}
	g.screen.Sync()
}

// toCell maps world space onto the terminal grid, dropping depth.
func (g *Game) toCell(p geometry.Vector3D) (int, int) {
	x := float64(g.width)/2 + p.X/g.unitsPerCol
	y := float64(g.height)/2 - p.Y/(g.unitsPerCol*cellAspect)
	return int(math.Floor(x)), int(math.Floor(y))
}

func (g *Game) fromCell(x, y int) geometry.Vector3D {
	return geometry.Vector3D{
		X: (float64(x) + 0.5 - float64(g.width)/2) * g.unitsPerCol,
		Y: -(float64(y) + 0.5 - float64(g.height)/2) * g.unitsPerCol * cellAspect,
	}
}

func (g *Game) nextText() {
	g.textIndex = (g.textIndex + 1) % len(g.texts)
	homes, err := shape.TextTargets(g.texts[g.textIndex], g.swarm.Len(), g.opts)
	if err != nil {
		return
	}
	if err := g.swarm.Retarget(homes); err == nil {
		g.handleResize()
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				g.swarm.Scatter(g.settings.ScatterDuration)
			case 'r':
				g.swarm.Form()
			case 't':
				g.nextText()
			case 'p':
				g.paused = !g.paused
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		g.pointer = behavior.Pointer{Position: g.fromCell(x, y), Active: true}

	case *tcell.EventFocus:
		if !ev.Focused {
			g.pointer.Active = false
		}

	case *tcell.EventResize:
		g.handleResize()
	}
	return true
}

func (g *Game) step() {
	if g.paused {
		return
	}
	g.swarm.Step(g.pointer, g.settings)
}

func (g *Game) draw() {
	g.screen.Clear()
	visuals := g.present.Update(g.swarm.Boids, g.settings)
	bg := tcell.StyleDefault.Background(tcell.ColorReset)

	for i, b := range g.swarm.Boids {
		x, y := g.toCell(b.Position)
		if x < 0 || y < 1 || x >= g.width || y >= g.height {
			continue
		}
		c := visuals[i].RGBA()
		style := bg.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		g.screen.SetContent(x, y, glyphFor(b, g.settings), nil, style)
	}

	if g.pointer.Active {
		x, y := g.toCell(g.pointer.Position)
		g.screen.SetContent(x, y, '+', nil, bg.Foreground(tcell.ColorHotPink))
	}

	status := fmt.Sprintf(" %q  tick %d  %s  [space] scatter [r] form [t] text [p] pause [q] quit",
		g.texts[g.textIndex], g.swarm.Tick(), g.swarm.Mode)
	for i, r := range status {
		if i >= g.width {
			break
		}
		g.screen.SetContent(i, 0, r, nil, bg.Reverse(true))
	}
	g.screen.Show()
}

func glyphFor(b behavior.Boid, s behavior.Settings) rune {
	if s.MaxSpeed <= 0 {
		return glyphs[0]
	}
	ratio := math.Min(b.Velocity.Len()/s.MaxSpeed, 1)
	return glyphs[int(ratio*float64(len(glyphs)-1)+0.5)]
}

func (g *Game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.step()
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

func main() {
	text := flag.String("text", "SWARM,HELLO,GO", "comma separated texts to cycle through")
	n := flag.Int("n", 400, "number of boids")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	var texts []string
	for _, t := range strings.Split(*text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		fmt.Fprintln(os.Stderr, "no text to spell")
		os.Exit(2)
	}

	game, err := NewGame(texts, *n, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
