// Package engine runs the game thread: editor messages, repaint ordering
// and fixed-object flushes happen here, one tick at a time.
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/isoworld/internal/game/combat"
	"github.com/udisondev/isoworld/internal/game/render"
	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/studio"
	"github.com/udisondev/isoworld/internal/world"
)

// FixtureSaver persists the modified fixed-object records of a map.
type FixtureSaver interface {
	SaveModified(ctx context.Context, m *world.Map) (int, error)
}

// TickStats — итог одного тика.
type TickStats struct {
	Edits   int // editor messages applied
	Regions int // dirty regions repainted
	Painted int // objects ordered for painting
}

// Engine owns the world and everything that touches it.
type Engine struct {
	World   *world.World
	Env     *model.Env
	Dirty   *world.DirtyRegions
	Combat  *combat.Manager
	Painter *render.Painter

	link  *studio.Link
	inbox <-chan []byte
	store FixtureSaver

	tick time.Duration
	save time.Duration
	log  *slog.Logger

	ticks   atomic.Uint64
	stopCh  chan struct{}
	scratch []*model.Object
}

// Options configures a new Engine.
type Options struct {
	Tick        time.Duration
	Save        time.Duration // 0 disables periodic saves
	CombatTrace bool
	Log         *slog.Logger
}

// New wires a world to its collaborators: dirty-region tracking, combat
// and the painter all share env.
func New(w *world.World, env *model.Env, opts Options) *Engine {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	dirty := world.NewDirtyRegions()
	env.Maps = w
	env.Dirty = dirty
	env.Log = opts.Log
	return &Engine{
		World:   w,
		Env:     env,
		Dirty:   dirty,
		Combat:  combat.NewManager(env, opts.CombatTrace),
		Painter: render.NewPainter(render.NewIsoProjector(0, 0), opts.Log),
		tick:    opts.Tick,
		save:    opts.Save,
		log:     opts.Log,
		stopCh:  make(chan struct{}),
	}
}

// AttachStudio routes editor messages from inbox through link and makes
// link the object editor.
func (e *Engine) AttachStudio(link *studio.Link, inbox <-chan []byte) {
	e.link = link
	e.inbox = inbox
	e.Env.Editor = link
}

// SetStore enables fixed-object persistence.
func (e *Engine) SetStore(s FixtureSaver) {
	e.store = s
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 {
	return e.ticks.Load()
}

// Tick runs one step of the game thread.
func (e *Engine) Tick() TickStats {
	var st TickStats
	if e.link != nil {
		st.Edits = e.link.Poll(e.inbox)
	}

	regions := e.Dirty.Drain()
	cur := e.World.CurrentMap()
	if cur == nil {
		if len(regions) > 0 {
			e.log.Warn("no current map, repaint skipped", "regions", len(regions))
		}
		e.ticks.Add(1)
		return st
	}
	for _, r := range regions {
		e.scratch = cur.ObjectsIn(e.scratch[:0], r)
		st.Painted += len(e.Painter.PaintOrder(e.scratch))
		st.Regions++
	}
	clear(e.scratch)

	e.ticks.Add(1)
	return st
}

// Flush saves the modified fixed objects of every map.
// Returns the number of chunks written.
func (e *Engine) Flush(ctx context.Context) (int, error) {
	if e.store == nil {
		return 0, nil
	}
	total := 0
	for _, num := range e.World.MapNums() {
		m, _ := e.World.GetMap(num)
		n, err := e.store.SaveModified(ctx, m)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Start runs the tick loop (blocks until context is canceled or Stop).
// Pending fixed objects are flushed on the way out.
func (e *Engine) Start(ctx context.Context) error {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	var saveC <-chan time.Time
	if e.save > 0 && e.store != nil {
		saver := time.NewTicker(e.save)
		defer saver.Stop()
		saveC = saver.C
	}

	e.log.Info("engine started", "tick", e.tick, "save", e.save)

	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopping")
			e.finalFlush()
			return ctx.Err()

		case <-e.stopCh:
			e.log.Info("engine stopped")
			e.finalFlush()
			return nil

		case <-ticker.C:
			st := e.Tick()
			if st.Edits > 0 || st.Regions > 0 {
				e.log.Debug("tick", "edits", st.Edits, "regions", st.Regions, "painted", st.Painted)
			}

		case <-saveC:
			if n, err := e.Flush(ctx); err != nil {
				e.log.Error("saving fixtures", "error", err)
			} else if n > 0 {
				e.log.Debug("fixtures flushed", "chunks", n)
			}
		}
	}
}

// Stop stops the tick loop.
func (e *Engine) Stop() {
	close(e.stopCh)
}

func (e *Engine) finalFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if n, err := e.Flush(ctx); err != nil {
		e.log.Error("final fixture save", "error", err)
	} else if n > 0 {
		e.log.Info("fixtures saved on shutdown", "chunks", n)
	}
}
