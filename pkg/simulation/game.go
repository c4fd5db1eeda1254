package simulation

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

const (
	boidLength = 4.0 // world units, tip to tail
	boidWidth  = 1.6
	// pointerPlaneZ is the depth the 2D cursor is unprojected onto
	pointerPlaneZ = 0.0
)

// Solid source texture for batched triangles
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx         context.Context
	System      actor.ActorSystem
	swarmPID    *actor.PID
	frameCh     chan *Frame
	lastFrame   *Frame
	pointer     *Latest[behavior.Pointer]
	settingsSrc *Latest[behavior.Settings]
	camera      Camera

	// UI Controls, the sliders edit settings in place
	panel    *ui.Panel
	settings behavior.Settings

	cfg       *Config
	textIndex int

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms

	vertices []ebiten.Vertex
	indices  []uint16
}

func GetNewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	g := &Game{
		ctx:         ctx,
		System:      system,
		frameCh:     make(chan *Frame, 4), // Buffer to avoid blocking
		lastFrame:   &Frame{},
		pointer:     NewLatest(behavior.Pointer{}),
		settingsSrc: NewLatest(cfg.Flock),
		camera:      NewCamera(cfg),
		settings:    cfg.Flock,
		cfg:         cfg,
	}

	swarmPID, err := system.Spawn(ctx, "swarm", NewSwarmActor(cfg, g.pointer, g.settingsSrc, g.frameCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn swarm: %w", err)
	}
	g.swarmPID = swarmPID
	g.panel = g.buildPanel()
	return g, nil
}

func (g *Game) buildPanel() *ui.Panel {
	s := &g.settings
	panel := ui.NewPanel(10, 10, 240, float64(g.cfg.WindowHeight)-20, "Flock  [H] hide")

	panel.AddSection("Speed")
	panel.AddSlider("Max Speed", 0.5, 6, &s.MaxSpeed)
	panel.AddSlider("Max Force", 0.005, 0.3, &s.MaxForce)

	panel.AddSection("Flocking")
	panel.AddSlider("Separation Radius", 5, 100, &s.SeparationRadius)
	panel.AddSlider("Alignment Radius", 5, 150, &s.AlignmentRadius)
	panel.AddSlider("Cohesion Radius", 5, 150, &s.CohesionRadius)
	panel.AddSlider("Separation Weight", 0, 5, &s.SeparationWeight)
	panel.AddSlider("Alignment Weight", 0, 5, &s.AlignmentWeight)
	panel.AddSlider("Cohesion Weight", 0, 5, &s.CohesionWeight)
	panel.AddSlider("Drift Weight", 0, 5, &s.DriftWeight)
	panel.AddCheckbox("Spatial grid", &s.UseSpatialGrid)

	panel.AddSection("Pointer")
	panel.AddSlider("Repel Radius", 5, 200, &s.PointerRepelRadius)
	panel.AddSlider("Repel Strength", 0, 10, &s.PointerRepelStrength)
	panel.AddSlider("Collision Distance", 0, 60, &s.CollisionDistance)

	panel.AddSection("Shape")
	panel.AddSlider("Form Lerp", 0.01, 0.5, &s.FormLerp)
	panel.AddButton("Scatter  [Space]", g.scatter).Lit = func() bool {
		return g.lastFrame.Mode.Kind == behavior.Scattered
	}
	panel.AddButton("Form  [R]", g.form).Lit = func() bool {
		return g.lastFrame.Mode.Kind == behavior.Formed
	}
	panel.AddButton("Next text  [T]", g.nextText)
	return panel
}

func (g *Game) scatter() {
	_ = actor.Tell(g.ctx, g.swarmPID, &Command{Value: int32(g.settings.ScatterDuration)})
}

func (g *Game) form() {
	_ = actor.Tell(g.ctx, g.swarmPID, &Command{Value: 0})
}

func (g *Game) nextText() {
	g.textIndex = (g.textIndex + 1) % len(g.cfg.Texts)
	_ = actor.Tell(g.ctx, g.swarmPID, &Spell{Value: g.cfg.Texts[g.textIndex]})
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel and keyboard shortcuts
	g.panel.Update()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.scatter()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.form()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.nextText()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.panel.Hidden = !g.panel.Hidden
	}

	// 2. Retrieve Latest Frame (Non-blocking)
	select {
	case frame := <-g.frameCh:
		g.lastFrame = frame
	default:
		// Use previous frame if new one isn't ready
	}

	// 3. Publish this frame's inputs, then trigger the simulation step
	g.pointer.Store(g.readPointer())
	g.settingsSrc.Store(g.settings)
	return actor.Tell(g.ctx, g.swarmPID, &Tick{})
}

// readPointer unprojects the cursor onto the pointer plane. The pointer is
// inactive outside the window and over the panel.
func (g *Game) readPointer() behavior.Pointer {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if x < 0 || y < 0 || x >= g.camera.Width || y >= g.camera.Height || g.panel.Contains(x, y) {
		return behavior.Pointer{}
	}
	p, ok := g.camera.Unproject(x, y, pointerPlaneZ)
	return behavior.Pointer{Position: p, Active: ok}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 5, G: 5, B: 15, A: 255})

	// 1. Draw all boids from the last known frame, in a single batch
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for i := range g.lastFrame.Boids {
		g.appendBoid(g.lastFrame.Boids[i], g.lastFrame.Visuals[i])
	}
	if len(g.indices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}

	// 2. Pointer ring
	if p := g.pointer.Load(); p.Active {
		if x, y, scale, ok := g.camera.Project(p.Position); ok {
			vector.StrokeCircle(screen, float32(x), float32(y),
				float32(g.settings.PointerRepelRadius*scale), 1,
				color.RGBA{R: 255, G: 105, B: 180, A: 90}, true)
		}
	}

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	// Display performance stats on the right side to avoid overlap with panel
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\n\n%q\nTick: %d\nMode: %s",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg,
		g.lastFrame.Text,
		g.lastFrame.Tick,
		g.lastFrame.Mode)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.WindowWidth-170, 10)
}

// appendBoid adds one triangle pointing along the boid's heading. The
// heading is projected like the body, so boids flying toward the camera
// look foreshortened.
func (g *Game) appendBoid(b behavior.Boid, v behavior.Visual) {
	tip := b.Position.Add(v.Heading.Mul(boidLength / 2))
	tail := b.Position.Sub(v.Heading.Mul(boidLength / 2))

	tx, ty, scale, ok1 := g.camera.Project(tip)
	bx, by, _, ok2 := g.camera.Project(tail)
	if !ok1 || !ok2 {
		return
	}

	// screen-space perpendicular for the wings
	dx, dy := tx-bx, ty-by
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		dx, dy, l = 1, 0, 1
	}
	w := boidWidth * scale
	px, py := -dy/l*w, dx/l*w

	c := v.RGBA()
	r, gr, bl := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: bl, ColorA: 1,
		}
	}

	base := uint16(len(g.vertices))
	if int(base)+3 > math.MaxUint16 {
		return
	}
	g.vertices = append(g.vertices,
		vertex(tx, ty),
		vertex(bx+px, by+py),
		vertex(bx-px, by-py),
	)
	g.indices = append(g.indices, base, base+1, base+2)
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.WindowWidth, g.cfg.WindowHeight }
