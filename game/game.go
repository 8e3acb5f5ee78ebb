// Package game wires the services together and runs the frame loop: one
// goroutine feeds terminal events into a channel, a ticker drives frames,
// and within each frame input precedes state updates precedes rendering.
package game

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/audio"
	"github.com/lixenwraith/worldkit/config"
	"github.com/lixenwraith/worldkit/editor"
	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/interaction"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/render"
	"github.com/lixenwraith/worldkit/state"
	"github.com/lixenwraith/worldkit/store"
)

// Game owns every service for one session
type Game struct {
	cfg    config.Config
	screen tcell.Screen
	log    *zap.Logger

	bus      *event.Bus
	in       *input.Service
	assets   *asset.Loader
	store    *store.Store
	registry *interaction.Registry
	manager  *state.Manager
	editor   *editor.Editor
	renderer *render.Renderer
	audio    *audio.Service
}

// New builds the full service graph on an initialized screen
func New(cfg config.Config, screen tcell.Screen, log *zap.Logger) (*Game, error) {
	bindings, err := cfg.InputBindings()
	if err != nil {
		return nil, fmt.Errorf("input bindings: %w", err)
	}

	g := &Game{
		cfg:    cfg,
		screen: screen,
		log:    log,
		bus:    event.NewBus(),
		in:     input.NewService(bindings),
	}
	g.assets = asset.NewLoader(cfg.AssetsDir, log)
	g.store = store.New(cfg.WorldsFile)
	g.registry = interaction.NewRegistry(g.bus, log)
	interaction.RegisterBuiltins(g.registry, g.bus, g.player, log)

	ctx := &state.Context{
		Bus:          g.bus,
		Input:        g.in,
		Assets:       g.assets,
		Registry:     g.registry,
		Store:        g.store,
		Log:          log,
		DefaultWorld: cfg.DefaultWorld,
	}
	g.editor = editor.New(g.bus, g.in, g.assets, g.store, cfg.Palette, log)

	g.manager = state.NewManager(g.bus, log)
	g.manager.Register(state.NewHub(ctx))
	g.manager.Register(state.NewMiniGame(ctx))
	g.manager.Register(state.NewCustomWorld(ctx))
	g.manager.Register(state.NewSolarSystem(ctx))
	g.manager.Register(state.NewEditorState(ctx, g.editor))
	g.manager.SetFallback(state.NameHub)

	g.renderer = render.New(screen, g.bus)

	g.audio = audio.NewService(log)
	if cfg.Audio {
		if err := g.audio.Start(g.bus); err != nil {
			log.Warn("audio start failed", zap.Error(err))
		}
	}

	screen.EnableMouse()
	return g, nil
}

// player resolves the active state's player entity for interactions
func (g *Game) player() *entity.Entity {
	cur := g.manager.Current()
	if cur == nil {
		return nil
	}
	if holder, ok := cur.(interface{ Player() *entity.Entity }); ok {
		return holder.Player()
	}
	return nil
}

// Run enters the hub and blocks until quit
func (g *Game) Run() error {
	if err := g.manager.Switch(state.NameHub, nil); err != nil {
		return fmt.Errorf("enter hub: %w", err)
	}

	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.InputEventBuffer)
	go g.feedEvents(eventChan)

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			now := time.Now()
			g.frame(now.Sub(last))
			last = now
		}
	}
}

// feedEvents forwards terminal events into ch until the screen is
// finalized, at which point PollEvent yields nil and the feeder exits
func (g *Game) feedEvents(ch chan<- tcell.Event) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		ch <- ev
	}
}

// handleEvent routes one terminal event; returns false to quit
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// Loop-level keys act on the key edge, everything else goes
		// through the hold/release tracking
		if action, ok := g.in.ActionFor(ev); ok {
			switch action {
			case input.ActionQuit:
				return false
			case input.ActionToggleEditor:
				g.toggleEditor()
				return true
			}
		}
		g.in.HandleEvent(ev)
	case *tcell.EventMouse:
		g.in.HandleEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) toggleEditor() {
	target := state.NameEditor
	if g.manager.CurrentName() == state.NameEditor {
		target = state.NameHub
	}
	if err := g.manager.Switch(target, nil); err != nil {
		g.log.Error("editor toggle failed", zap.Error(err))
	}
}

// frame runs one tick: input, state update, render
func (g *Game) frame(dt time.Duration) {
	g.in.Tick()
	g.manager.Update(dt)
	g.renderer.Frame(g.view())
}

// view assembles what the renderer needs from the current state
func (g *Game) view() render.View {
	v := render.View{Status: "loading..."}
	cur := g.manager.Current()
	if cur == nil || !cur.Ready() {
		return v
	}
	v.Scene = cur.Scene()
	v.Camera = cur.Camera()
	v.Status = cur.Name()

	if es, ok := cur.(*state.EditorState); ok {
		ed := es.Editor()
		v.Preview = ed.Preview()
		v.Selection = ed.Selection()
		v.Status = fmt.Sprintf("editor | tool: %s | asset: %s | world: %s",
			ed.Tool(), ed.CurrentAsset(), ed.WorldName())
	}
	return v
}

// Close shuts the services down in reverse construction order
func (g *Game) Close() {
	g.manager.Close()
	g.audio.Stop()
	g.renderer.Close()
	g.assets.Dispose()
}
