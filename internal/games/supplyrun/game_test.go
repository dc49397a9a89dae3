package supplyrun

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/supplyrun/internal/anim"
	"github.com/vovakirdan/supplyrun/internal/collision"
	"github.com/vovakirdan/supplyrun/internal/config"
	"github.com/vovakirdan/supplyrun/internal/core"
	"github.com/vovakirdan/supplyrun/internal/registry"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
}

// setup isolates config lookup, optionally installs a custom YAML file and
// resets g.
func setup(t *testing.T, g *Game, yaml string) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	if yaml != "" {
		path := filepath.Join(t.TempDir(), "supplyrun.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		SetConfigPath(path)
		t.Cleanup(func() { SetConfigPath("") })
	}

	g.Reset(testRuntime)
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func countEvents(events []core.Event, want core.Event) int {
	n := 0
	for _, e := range events {
		if e == want {
			n++
		}
	}
	return n
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{IDFrame, IDClassic} {
		if !registry.Exists(id) {
			t.Errorf("variant %q is not registered", id)
		}
	}

	g, err := registry.Create(IDClassic)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Supply Run (classic)" {
		t.Errorf("classic title = %q", g.Title())
	}
}

func TestResetStartsFromInitialOffsets(t *testing.T) {
	g := setup(t, New(), "")

	f := g.Frame()
	if f.Obstacle != 400 || f.Supply != 600 {
		t.Errorf("initial offsets = %v/%v, expected 400/600", f.Obstacle, f.Supply)
	}
	if f.Score != 0 || f.GameOver || f.Paused {
		t.Errorf("fresh session state = %+v", f)
	}
	if g.Sampling() != collision.SamplingFrame {
		t.Errorf("default variant sampling = %q, expected frame", g.Sampling())
	}
}

func TestClassicObstaclePassesScoreThenForcedCollision(t *testing.T) {
	g := setup(t, NewClassic(), "")

	// Three full obstacle passes; the supply completes once in between.
	g.sched.Advance(9 * time.Second)
	if g.score != 3 {
		t.Fatalf("score after three passes = %d, expected 3", g.score)
	}
	if g.gameOver {
		t.Fatal("no pass ended inside the band, game should still be running")
	}

	g.obstaclePassed(g.session, collision.Sample{Obstacle: 25, Supply: g.supply.Value(), Jumping: false})

	if !g.gameOver {
		t.Fatal("obstacle completion at 25 while grounded should end the game")
	}
	if g.score != 3 {
		t.Errorf("score at game over = %d, expected 3", g.score)
	}

	// Score is frozen and nothing restarts after game over
	g.sched.Advance(time.Minute)
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.score != 3 {
		t.Errorf("score changed after game over: %d", g.score)
	}
	if g.obstacle.Running() || g.supply.Running() {
		t.Error("entities should stay stopped after game over")
	}
}

func TestObstaclePassOutsideBandScoresOneAndRestarts(t *testing.T) {
	g := setup(t, NewClassic(), "")

	tests := []struct {
		name   string
		sample collision.Sample
	}{
		{"past the runner", collision.Sample{Obstacle: -50}},
		{"on the band edge", collision.Sample{Obstacle: 50}},
		{"in band but jumping", collision.Sample{Obstacle: 25, Jumping: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := g.score
			g.sched.Advance(500 * time.Millisecond)
			g.obstaclePassed(g.session, tc.sample)

			if g.gameOver {
				t.Fatal("should not collide")
			}
			if g.score != before+1 {
				t.Errorf("score = %d, expected %d", g.score, before+1)
			}
			if g.obstacle.Value() != g.cfg.Obstacle.Start {
				t.Errorf("obstacle should restart from %v, got %v", g.cfg.Obstacle.Start, g.obstacle.Value())
			}
		})
	}
}

func TestSupplyPickupAtCompletion(t *testing.T) {
	g := setup(t, NewClassic(), "")
	g.score = 4

	if !g.Jump() {
		t.Fatal("Jump() should start a cycle")
	}
	g.supplyPassed(g.session, collision.Sample{Obstacle: 300, Supply: 10, Jumping: g.jump.Active()})

	if g.score != 14 {
		t.Errorf("score after pickup = %d, expected 14", g.score)
	}
	if g.gameOver {
		t.Error("pickup must not end the game")
	}
	if g.supply.Value() != g.cfg.Supply.Start {
		t.Errorf("supply should restart from %v, got %v", g.cfg.Supply.Start, g.supply.Value())
	}
}

func TestSupplyMissWithoutJump(t *testing.T) {
	g := setup(t, NewClassic(), "")

	g.supplyPassed(g.session, collision.Sample{Supply: 10, Jumping: false})

	if g.score != 0 {
		t.Errorf("grounded runner should not collect, score = %d", g.score)
	}
	if !g.supply.Running() {
		t.Error("supply should restart after a missed pass")
	}
}

func TestClassicScoresOnePointPerPass(t *testing.T) {
	g := setup(t, NewClassic(), "")

	obstaclePasses := 0
	for i := 0; i < 30*60; i++ {
		res := g.Step(core.NewInputFrame())
		obstaclePasses += countEvents(res.Events, core.EventObstaclePassed)
	}

	// 30s at 60fps; integer tick length lands just short of the 10th pass.
	if obstaclePasses != 9 {
		t.Errorf("obstacle passes = %d, expected 9", obstaclePasses)
	}
	if g.score != obstaclePasses {
		t.Errorf("score = %d, expected one point per pass (%d)", g.score, obstaclePasses)
	}
	if g.gameOver {
		t.Error("pass-end sampling never sees the obstacle inside the band")
	}
}

func TestFrameSamplingCollidesMidPass(t *testing.T) {
	g := setup(t, New(), "")

	steps := 0
	var last core.StepResult
	for steps < 300 && !last.State.GameOver {
		last = g.Step(core.NewInputFrame())
		steps++
	}

	if !last.State.GameOver {
		t.Fatal("grounded runner should be hit during the first pass")
	}
	if countEvents(last.Events, core.EventCollision) != 1 {
		t.Errorf("final step events = %v, expected one collision", last.Events)
	}
	if last.State.Score != 0 {
		t.Errorf("score = %d, expected 0", last.State.Score)
	}
	if f := g.Frame(); !g.zone.Contains(f.Obstacle) {
		t.Errorf("obstacle frozen at %v, expected inside the band", f.Obstacle)
	}
	// Obstacle reaches x < 50 after 2333ms: tick 141 at 60fps.
	if steps != 141 {
		t.Errorf("collision on step %d, expected 141", steps)
	}
}

func TestFrameSamplingJumpClearsObstacle(t *testing.T) {
	g := setup(t, New(), "")

	jumped := false
	for i := 0; i < 200; i++ {
		var in core.InputFrame
		if !jumped && g.sched.Now() >= 2*time.Second {
			in = input(core.ActionJump)
			jumped = true
		}
		res := g.Step(in)
		if res.State.GameOver {
			t.Fatalf("runner was hit on step %d despite jumping", i)
		}
	}

	if g.score != 1 {
		t.Errorf("score = %d, expected 1 for the cleared obstacle", g.score)
	}
}

func TestFrameSamplingPickupIsLatchedPerPass(t *testing.T) {
	// Keep the obstacle far away so only the supply matters.
	g := setup(t, New(), "obstacle:\n  start: 10000\n  duration: 100s\n")

	jumped := false
	collected := 0
	sawHidden := false
	for i := 0; i < 330; i++ {
		var in core.InputFrame
		if !jumped && g.sched.Now() >= 4200*time.Millisecond {
			in = input(core.ActionJump)
			jumped = true
		}
		res := g.Step(in)
		collected += countEvents(res.Events, core.EventSupplyCollected)
		if !g.Frame().SupplyVisible {
			sawHidden = true
		}
	}

	if collected != 1 {
		t.Errorf("supply collected %d times, expected once", collected)
	}
	if g.score != 10 {
		t.Errorf("score = %d, expected 10", g.score)
	}
	if !sawHidden {
		t.Error("collected supply should be hidden for the rest of its pass")
	}
	if !g.Frame().SupplyVisible {
		t.Error("supply should be visible again after it restarts")
	}
}

func TestFrameSamplingLowTickRateStillCollides(t *testing.T) {
	for _, fps := range []int{1, 2, 3, 10} {
		t.Run(fmt.Sprintf("%dfps", fps), func(t *testing.T) {
			g := setup(t, New(), "")
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: fps})

			var last core.StepResult
			for i := 0; i < 30*fps && !last.State.GameOver; i++ {
				last = g.Step(core.NewInputFrame())
			}

			if !last.State.GameOver {
				t.Fatalf("grounded runner survived at %d fps, score = %d", fps, last.State.Score)
			}
			if last.State.Score != 0 {
				t.Errorf("score = %d, expected 0", last.State.Score)
			}
			if f := g.Frame(); !g.zone.Contains(f.Obstacle) {
				t.Errorf("obstacle frozen at %v, expected inside the band", f.Obstacle)
			}
		})
	}
}

func TestSubsteps(t *testing.T) {
	cfg := config.DefaultSupplyRunConfig()

	tests := []struct {
		name string
		tick time.Duration
		want int
	}{
		{"60fps", time.Second / 60, 1},
		{"10fps", time.Second / 10, 1},
		{"1fps", time.Second, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substeps(tt.tick, cfg); got != tt.want {
				t.Errorf("substeps(%v) = %d, expected %d", tt.tick, got, tt.want)
			}
		})
	}

	cfg.Collision.BandMax = cfg.Collision.BandMin
	if got := substeps(time.Second, cfg); got != 1 {
		t.Errorf("empty band: substeps = %d, expected 1", got)
	}
}

func TestSimultaneousCompletions(t *testing.T) {
	tests := []struct {
		name    string
		jumping bool
	}{
		{"grounded", false},
		{"airborne", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Both passes end at 3s, outside the band.
			g := setup(t, NewClassic(), "supply:\n  duration: 3s\n")

			if tt.jumping {
				g.sched.Advance(2600 * time.Millisecond)
				if !g.Jump() {
					t.Fatal("jump was refused")
				}
				g.sched.Advance(400 * time.Millisecond)
				if !g.jump.Active() {
					t.Fatal("setup: runner should be airborne at 3s")
				}
			} else {
				g.sched.Advance(3 * time.Second)
			}

			f := g.Frame()
			if f.Score != 1 || f.GameOver {
				t.Errorf("score = %d over = %v, expected 1 and running", f.Score, f.GameOver)
			}
			if f.Obstacle != 400 || f.Supply != 600 {
				t.Errorf("offsets = %v/%v, expected both restarted at 400/600", f.Obstacle, f.Supply)
			}
			if !g.obstacle.Running() || !g.supply.Running() {
				t.Error("both entities should be on their next pass")
			}
		})
	}
}

func TestJumpTuningFixedPerInstance(t *testing.T) {
	g := setup(t, New(), "")
	j := g.jump

	path := filepath.Join(t.TempDir(), "supplyrun.yaml")
	if err := os.WriteFile(path, []byte("jump:\n  peak: -40\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
	g.Reset(testRuntime)

	if g.jump != j {
		t.Error("Reset should reuse the jump controller")
	}
	if g.jump.Peak() != -100 {
		t.Errorf("peak = %v, expected the first Reset's -100", g.jump.Peak())
	}
}

func TestGameOverLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	old := logger
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { logger = old })

	g := setup(t, New(), "")
	for i := 0; i < 300 && !g.gameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.gameOver {
		t.Fatal("setup: grounded runner should be hit")
	}

	if n := strings.Count(buf.String(), "game over"); n != 1 {
		t.Errorf("\"game over\" logged %d times, expected 1\n%s", n, buf.String())
	}
}

func TestJumpIsIdempotentWhileActive(t *testing.T) {
	g := setup(t, New(), "")

	res := g.Step(input(core.ActionJump))
	if countEvents(res.Events, core.EventJump) != 1 {
		t.Fatalf("first jump events = %v", res.Events)
	}
	offset, phase := g.jump.Offset(), g.jump.Phase()

	if g.Jump() {
		t.Error("Jump() while airborne should report false")
	}
	if g.jump.Offset() != offset || g.jump.Phase() != phase {
		t.Error("redundant Jump() changed the jump phase")
	}

	res = g.Step(input(core.ActionJump))
	if countEvents(res.Events, core.EventJump) != 0 {
		t.Errorf("second jump should not start a cycle, events = %v", res.Events)
	}
	if !res.State.Jumping {
		t.Error("state should report jumping")
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := setup(t, New(), "")
	g.Step(core.NewInputFrame())

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}
	frozen := g.Frame()

	for i := 0; i < 30; i++ {
		g.Step(input(core.ActionJump))
	}
	f := g.Frame()
	if f.Elapsed != frozen.Elapsed || f.Obstacle != frozen.Obstacle {
		t.Error("time advanced while paused")
	}
	if f.Phase != anim.JumpIdle {
		t.Error("jump should be ignored while paused")
	}

	res = g.Step(input(core.ActionPause))
	if res.State.Paused {
		t.Fatal("second pause action should resume")
	}
	if g.Frame().Elapsed <= frozen.Elapsed {
		t.Error("time should advance after resuming")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := setup(t, NewClassic(), "")
	g.sched.Advance(6 * time.Second)
	g.obstaclePassed(g.session, collision.Sample{Obstacle: 25})
	if !g.gameOver {
		t.Fatal("setup: expected game over")
	}

	res := g.Step(input(core.ActionRestart))

	if countEvents(res.Events, core.EventRestart) != 1 {
		t.Errorf("restart events = %v", res.Events)
	}
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("state after restart = %+v", res.State)
	}
	f := g.Frame()
	if f.Obstacle != 400 || f.Supply != 600 {
		t.Errorf("offsets after restart = %v/%v, expected 400/600", f.Obstacle, f.Supply)
	}
	if !g.obstacle.Running() || !g.supply.Running() {
		t.Error("both entities should be moving after restart")
	}
}

func TestRestartWhileRunningDropsPendingPass(t *testing.T) {
	g := setup(t, NewClassic(), "")

	g.sched.Advance(2900 * time.Millisecond)
	g.Restart()
	g.sched.Advance(200 * time.Millisecond)

	if g.score != 0 {
		t.Errorf("pass from the previous session was counted, score = %d", g.score)
	}
	if got := g.obstacle.Value(); math.Abs(got-370) > 1e-9 {
		t.Errorf("obstacle = %v, expected 370 (200ms into the new pass)", got)
	}
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	g := setup(t, NewClassic(), "")
	old := g.session
	g.Restart()

	g.obstaclePassed(old, collision.Sample{Obstacle: 25})
	g.supplyPassed(old, collision.Sample{Supply: 10, Jumping: true})

	if g.gameOver || g.score != 0 {
		t.Errorf("stale callbacks changed the session: over=%v score=%d", g.gameOver, g.score)
	}
}

func TestRunnerLandsDuringGameOver(t *testing.T) {
	g := setup(t, New(), "")
	g.Jump()
	g.sched.Advance(100 * time.Millisecond)
	g.crash(g.sample())
	if !g.jump.Active() {
		t.Fatal("setup: runner should still be airborne")
	}

	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.jump.Active() || g.jump.Offset() != 0 {
		t.Errorf("runner should land after game over, offset = %v", g.jump.Offset())
	}
	if g.Jump() {
		t.Error("jump should be ignored after game over")
	}
}

func TestCallsBeforeResetAreSafe(t *testing.T) {
	g := New()

	if g.Jump() {
		t.Error("Jump() before Reset should be a no-op")
	}
	g.Restart()
	res := g.Step(input(core.ActionJump, core.ActionRestart))
	if res.State != (core.GameState{}) {
		t.Errorf("Step before Reset = %+v", res.State)
	}
	if g.Frame() != (Frame{}) {
		t.Error("Frame before Reset should be zero")
	}

	s := core.NewScreen(20, 5)
	g.Render(s)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Render before Reset should leave a blank screen")
	}
}

func TestRender(t *testing.T) {
	g := setup(t, NewClassic(), "")
	s := core.NewScreen(80, 24)

	g.Render(s)

	if !strings.Contains(s.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", s.Row(0))
	}
	if !strings.Contains(s.Row(0), "pass sampling") {
		t.Errorf("classic HUD should show the sampling mode, got %q", s.Row(0))
	}
	if ground := s.Row(21); ground != strings.Repeat(string(GroundChar), 80) {
		t.Errorf("ground row = %q", ground)
	}
	if s.GetCell(g.column(0, 80), 19).Color != core.ColorYellow {
		t.Error("runner should stand on the ground at the band's left edge")
	}

	g.score = 3
	g.crash(g.sample())
	g.Render(s)
	out := s.String()
	for _, want := range []string{"GAME OVER", "Your score is 3", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := setup(t, New(), "")
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}} {
		s := core.NewScreen(size[0], size[1])
		g.Render(s) // must not panic
	}
}

// chdir changes the working directory to dir for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
