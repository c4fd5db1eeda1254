package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/shape"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages understood by SwarmActor:
//
//	*emptypb.Empty           one simulation tick
//	*wrapperspb.StringValue  spell a new text
//	*wrapperspb.Int32Value   scatter for Value ticks, 0 re-forms at once
type (
	Tick    = emptypb.Empty
	Spell   = wrapperspb.StringValue
	Command = wrapperspb.Int32Value
)

// Frame is a copy of the flock after one tick, safe to read from the UI.
type Frame struct {
	Tick    uint64
	Mode    behavior.Mode
	Text    string
	Boids   []behavior.Boid
	Visuals []behavior.Visual
}

// SwarmActor owns the flock. Every tick it reads the latest pointer and
// settings, steps the swarm, and pushes a Frame to the UI.
type SwarmActor struct {
	cfg       *Config
	swarm     *behavior.Swarm
	presenter *behavior.Presenter
	pointer   PointerSource
	settings  SettingsSource
	frameCh   chan<- *Frame
	text      string
	runID     uuid.UUID
	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

var _ actor.Actor = (*SwarmActor)(nil)

// NewSwarmActor creates the swarm logic unit
func NewSwarmActor(cfg *Config, pointer PointerSource, settings SettingsSource, frameCh chan<- *Frame) *SwarmActor {
	return &SwarmActor{
		cfg:         cfg,
		pointer:     pointer,
		settings:    settings,
		frameCh:     frameCh,
		runID:       uuid.New(),
		lastLogTime: time.Now(),
	}
}

// PreStart builds the flock around the first text.
func (w *SwarmActor) PreStart(ctx *actor.Context) error {
	if len(w.cfg.Texts) == 0 {
		return fmt.Errorf("swarm %s: no text to spell", w.runID)
	}
	w.text = w.cfg.Texts[0]
	homes, err := shape.TextTargets(w.text, w.cfg.NumBoids, w.cfg.ShapeOptions())
	if err != nil {
		return fmt.Errorf("swarm %s: %w", w.runID, err)
	}
	w.swarm, err = behavior.NewSwarm(homes, w.settings.Load(), w.cfg.Seed)
	if err != nil {
		return fmt.Errorf("swarm %s: %w", w.runID, err)
	}
	w.presenter = behavior.NewPresenter(w.swarm.Len(), behavior.DefaultPalette())
	ctx.ActorSystem().Logger().Infof("Swarm %s: %d boids spelling %q", w.runID, w.swarm.Len(), w.text)
	return nil
}

func (w *SwarmActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("Swarm %s started", w.runID)

	case *Tick:
		w.logBenchmarks(ctx)
		settings := w.settings.Load()
		w.swarm.Step(w.pointer.Load(), settings)
		w.pushFrame(settings)

	case *Spell:
		if err := w.spell(msg.GetValue()); err != nil {
			ctx.Logger().Warnf("Swarm %s: cannot spell %q: %v", w.runID, msg.GetValue(), err)
			return
		}
		ctx.Logger().Infof("Swarm %s: now spelling %q", w.runID, w.text)

	case *Command:
		if d := int(msg.GetValue()); d > 0 {
			w.swarm.Scatter(d)
		} else {
			w.swarm.Form()
		}
		ctx.Logger().Debugf("Swarm %s: mode %s", w.runID, w.swarm.Mode)

	default:
		ctx.Unhandled()
	}
}

// spell retargets every boid onto a new text; the flock keeps its size.
func (w *SwarmActor) spell(text string) error {
	homes, err := shape.TextTargets(text, w.swarm.Len(), w.cfg.ShapeOptions())
	if err != nil {
		return err
	}
	if err := w.swarm.Retarget(homes); err != nil {
		return err
	}
	w.text = text
	return nil
}

func (w *SwarmActor) logBenchmarks(ctx *actor.ReceiveContext) {
	w.tickCount++
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Boids: %d | Mode: %s",
			w.tickCount, w.swarm.Len(), w.swarm.Mode)
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *SwarmActor) pushFrame(settings behavior.Settings) {
	// visuals follow every tick even when the UI skips the frame
	visuals := w.presenter.Update(w.swarm.Boids, settings)
	if w.frameCh == nil {
		return
	}
	frame := &Frame{
		Tick:    w.swarm.Tick(),
		Mode:    w.swarm.Mode,
		Text:    w.text,
		Boids:   append([]behavior.Boid(nil), w.swarm.Boids...),
		Visuals: append([]behavior.Visual(nil), visuals...),
	}
	select {
	case w.frameCh <- frame:
	default:
		// UI busy, skip frame
	}
}

func (w *SwarmActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Swarm %s is shutdown...", w.runID)
	return nil
}
