// Package supplyrun implements Supply Run, a single-screen reflex game.
// The runner stays in place while an obstacle and a supply item sweep past on
// independent timers; jumping clears the obstacle and is the only way to
// grab the supply.
package supplyrun

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/supplyrun/internal/anim"
	"github.com/vovakirdan/supplyrun/internal/collision"
	"github.com/vovakirdan/supplyrun/internal/config"
	"github.com/vovakirdan/supplyrun/internal/core"
	"github.com/vovakirdan/supplyrun/internal/registry"
	"github.com/vovakirdan/supplyrun/internal/sched"
)

// Registered variant IDs.
const (
	IDFrame   = "supplyrun"
	IDClassic = "supplyrun_classic"
)

// configPath stores the custom config path set via CLI
var configPath string

// logger is shared by every game instance; discarded unless the CLI sets one.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game is the orchestrator: it owns score and game-over state, loops both
// entity animators and applies the collision oracle's verdicts.
type Game struct {
	id       string
	title    string
	sampling collision.Sampling // forced by the variant; empty means use config

	cfg     config.SupplyRunConfig
	runtime core.RuntimeConfig
	mode    collision.Sampling
	zone    collision.Zone
	tick    time.Duration
	subs    int // scheduler advances per tick, see substeps
	log     *log.Logger

	sched    *sched.Scheduler
	obstacle *anim.Animator
	supply   *anim.Animator
	jump     *anim.Jump // created once per instance, reused across sessions

	score       int
	gameOver    bool
	paused      bool
	session     uint64 // bumped on every restart; stale callbacks compare against it
	supplyTaken bool   // supply already collected during its current pass
	events      []core.Event
	frames      int // ticks simulated in the current session
}

// New creates the default variant, which samples collisions every tick.
func New() *Game {
	return &Game{id: IDFrame, title: "Supply Run"}
}

// NewClassic creates the variant that only checks collisions when an entity
// finishes its pass.
func NewClassic() *Game {
	return &Game{id: IDClassic, title: "Supply Run (classic)", sampling: collision.SamplingPass}
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.With("game", g.id)

	// LoadSupplyRun hands back defaults alongside any error
	cfg, err := config.LoadSupplyRun(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
	}
	g.applyConfig(cfg)

	g.paused = false
	g.Restart()
}

// applyConfig derives the runtime parameters from cfg and builds the
// scheduler and animators on first use.
func (g *Game) applyConfig(cfg config.SupplyRunConfig) {
	g.cfg = cfg
	g.zone = collision.Zone{Min: cfg.Collision.BandMin, Max: cfg.Collision.BandMax}

	g.mode = g.sampling
	if g.mode == "" {
		mode, err := collision.ParseSampling(cfg.Collision.Sampling)
		if err != nil {
			g.log.Warn("unknown sampling mode, using frame", "err", err)
			mode = collision.SamplingFrame
		}
		g.mode = mode
	}

	tickRate := g.runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(tickRate)
	g.subs = substeps(g.tick, cfg)

	// The jump controller lives as long as the instance, so jump tuning is
	// taken from the config of the first Reset only.
	if g.sched == nil {
		g.sched = sched.New()
		g.obstacle = anim.NewAnimator(g.sched)
		g.supply = anim.NewAnimator(g.sched)
		g.jump = anim.NewJump(g.sched, cfg.Jump.Peak, cfg.Jump.Rise, cfg.Jump.Fall)
	}
}

// substeps returns how many slices a tick is cut into so that no entity
// moves more than half the collision band between two frame samples.
// Otherwise a low tick rate lets an entity skip the band entirely.
func substeps(tick time.Duration, cfg config.SupplyRunConfig) int {
	band := cfg.Collision.BandMax - cfg.Collision.BandMin
	if band <= 0 || tick <= 0 {
		return 1
	}

	limit := tick
	for _, tr := range []config.TrackConfig{cfg.Obstacle, cfg.Supply} {
		dist := math.Abs(tr.Start - tr.End)
		if tr.Duration <= 0 || dist == 0 {
			continue
		}
		// time to cover half the band at this track's speed
		d := time.Duration(band / 2 / dist * float64(tr.Duration))
		limit = min(limit, max(d, time.Millisecond))
	}
	return int((tick + limit - 1) / limit)
}

// Restart begins a new session: score 0, game over cleared, both entities
// back at their start offsets. Completions still pending from the previous
// session are discarded. Before Reset it does nothing.
func (g *Game) Restart() {
	if g.sched == nil {
		return
	}
	g.session++
	g.score = 0
	g.gameOver = false
	g.frames = 0
	g.startObstacle()
	g.startSupply()
	g.log.Debug("session started", "session", g.session, "sampling", g.mode)
}

// Jump starts a jump cycle. It is a no-op while a jump is in flight, while
// paused, after game over and before Reset. It reports whether a cycle started.
func (g *Game) Jump() bool {
	if g.sched == nil || g.gameOver || g.paused {
		return false
	}
	if !g.jump.Jump() {
		return false
	}
	g.emit(core.EventJump)
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sched == nil {
		return core.StepResult{State: g.State()}
	}
	g.events = nil

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Restart()
			g.emit(core.EventRestart)
			return g.result()
		}
		// Entities are stopped; this only lets an airborne runner land.
		g.sched.Advance(g.tick)
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if in.Has(core.ActionJump) {
		g.Jump()
	}

	g.advance()
	g.frames++

	return g.result()
}

// advance moves one tick forward in g.subs slices, sampling after each
// slice in frame mode. The last slice absorbs the rounding remainder.
func (g *Game) advance() {
	step := g.tick / time.Duration(g.subs)
	for i := 0; i < g.subs && !g.gameOver; i++ {
		d := step
		if i == g.subs-1 {
			d = g.tick - step*time.Duration(g.subs-1)
		}
		g.sched.Advance(d)
		if g.mode == collision.SamplingFrame && !g.gameOver {
			g.sampleFrame()
		}
	}
}

// sample snapshots the positions and jump state the oracle looks at.
func (g *Game) sample() collision.Sample {
	return collision.Sample{
		Obstacle: g.obstacle.Value(),
		Supply:   g.supply.Value(),
		Jumping:  g.jump.Active(),
	}
}

func (g *Game) startObstacle() {
	session := g.session
	tr := g.cfg.Obstacle
	g.obstacle.Start(tr.Start, tr.End, tr.Duration, func() {
		g.obstaclePassed(session, g.sample())
	})
}

func (g *Game) startSupply() {
	session := g.session
	tr := g.cfg.Supply
	g.supplyTaken = false
	g.supply.Start(tr.Start, tr.End, tr.Duration, func() {
		g.supplyPassed(session, g.sample())
	})
}

// obstaclePassed handles the end of an obstacle pass sampled as s.
func (g *Game) obstaclePassed(session uint64, s collision.Sample) {
	if session != g.session || g.gameOver {
		return
	}
	if g.zone.Collides(s) {
		g.crash(s)
		return
	}
	g.score += g.cfg.Scoring.PassPoints
	g.emit(core.EventObstaclePassed)
	g.startObstacle()
}

// supplyPassed handles the end of a supply pass sampled as s.
func (g *Game) supplyPassed(session uint64, s collision.Sample) {
	if session != g.session || g.gameOver {
		return
	}
	if !g.supplyTaken && g.zone.PicksUp(s) {
		g.collect()
	}
	g.startSupply()
}

// sampleFrame consults the oracle mid-pass.
func (g *Game) sampleFrame() {
	s := g.sample()
	if g.zone.Collides(s) {
		g.crash(s)
		return
	}
	if !g.supplyTaken && g.zone.PicksUp(s) {
		g.collect()
	}
}

func (g *Game) collect() {
	g.supplyTaken = true
	g.score += g.cfg.Scoring.PickupPoints
	g.emit(core.EventSupplyCollected)
}

// crash ends the session. Stopping both animators cancels their pending
// completions, so nothing restarts a finished session.
func (g *Game) crash(s collision.Sample) {
	g.gameOver = true
	g.obstacle.Stop()
	g.supply.Stop()
	g.emit(core.EventCollision)
	g.log.Info("game over",
		"session", g.session,
		"score", g.score,
		"obstacle", s.Obstacle,
		"ticks", g.frames,
	)
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
	g.log.Debug("event", "event", e, "session", g.session, "score", g.score)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	jumping := false
	if g.jump != nil {
		jumping = g.jump.Active()
	}
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Jumping:  jumping,
	}
}

// Frame is an immutable snapshot of everything the shell draws.
type Frame struct {
	Obstacle      float64 // obstacle horizontal offset
	Supply        float64 // supply horizontal offset
	SupplyVisible bool    // false once collected during the current pass
	Jump          float64 // runner vertical offset (negative = up)
	Phase         anim.JumpPhase
	Score         int
	GameOver      bool
	Paused        bool
	Session       uint64
	Elapsed       time.Duration // virtual time since the instance was created
}

// Frame returns a snapshot of the current positions and state.
// Before Reset it returns the zero Frame.
func (g *Game) Frame() Frame {
	if g.sched == nil {
		return Frame{}
	}
	return Frame{
		Obstacle:      g.obstacle.Value(),
		Supply:        g.supply.Value(),
		SupplyVisible: !g.supplyTaken,
		Jump:          g.jump.Offset(),
		Phase:         g.jump.Phase(),
		Score:         g.score,
		GameOver:      g.gameOver,
		Paused:        g.paused,
		Session:       g.session,
		Elapsed:       g.sched.Now(),
	}
}

// Sampling returns the active collision sampling mode.
func (g *Game) Sampling() collision.Sampling {
	return g.mode
}

// Register the variants with the registry
func init() {
	registry.Register(IDFrame, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}
