package runner

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// fixedRandom returns the same draws forever.
type fixedRandom struct {
	f float64
	i int
}

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) Intn(n int) int   { return r.i % n }

// seqRandom cycles through fixed sequences.
type seqRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *seqRandom) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *seqRandom) Intn(n int) int {
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

var designViewport = config.Viewport{Width: 800, Height: 200}

func designScaled() config.Scaled {
	return config.Scale(config.DefaultRunnerConfig(), designViewport)
}

func TestClock(t *testing.T) {
	var c Clock
	if _, ok := c.Tick(100); ok {
		t.Fatal("first tick should only prime the clock")
	}
	if dt, ok := c.Tick(116.7); !ok || math.Abs(dt-16.7) > 1e-9 {
		t.Errorf("Tick() = %g, %v; expected 16.7, true", dt, ok)
	}
	if dt, _ := c.Tick(110); dt != 0 {
		t.Errorf("backwards timestamp should give zero delta, got %g", dt)
	}
	if dt, _ := c.Tick(126.7); math.Abs(dt-10) > 1e-9 {
		t.Errorf("delta after backwards timestamp = %g, expected 10", dt)
	}
}

func TestPlayerJumpRoundTrip(t *testing.T) {
	p := NewPlayer(designScaled())
	standing := p.Y()

	if !p.Jump() {
		t.Fatal("grounded player should accept a jump")
	}

	peak := standing
	frames := 0
	for {
		p.Update(1, 16.7)
		frames++
		peak = math.Min(peak, p.Y())
		if p.Grounded() {
			break
		}
		if p.Jump() {
			t.Fatal("airborne player should reject a jump")
		}
		if frames > 1000 {
			t.Fatal("player never landed")
		}
	}

	if p.Y() != standing {
		t.Errorf("landed at y=%g, expected %g", p.Y(), standing)
	}
	if p.Velocity() != 0 {
		t.Errorf("landed with velocity %g", p.Velocity())
	}

	s := designScaled()
	apex := s.Height - peak
	if apex < s.MinJumpHeight || apex > s.MaxJumpHeight {
		t.Errorf("jump apex %g outside [%g, %g]", apex, s.MinJumpHeight, s.MaxJumpHeight)
	}
}

func TestPlayerJumpAppliedOnNextUpdate(t *testing.T) {
	p := NewPlayer(designScaled())
	p.Jump()
	if !p.Grounded() {
		t.Error("jump should not move the player before Update")
	}

	// A zero-length frame applies the impulse but must not land the player.
	p.Update(1, 0)
	if p.Grounded() {
		t.Error("player landed on a zero-length frame")
	}
	if p.Velocity() >= 0 {
		t.Errorf("velocity = %g, expected upward", p.Velocity())
	}
}

func TestGroundOffsetStaysInRange(t *testing.T) {
	g := NewGround(designScaled())
	for i := 0; i < 5000; i++ {
		g.Update(1+float64(i)*0.01, 16.7)
		if g.Offset() > 0 || g.Offset() <= -g.Width() {
			t.Fatalf("offset %g outside (-%g, 0] after %d updates", g.Offset(), g.Width(), i+1)
		}
	}

	// One huge step wraps too.
	g.Reset()
	g.Update(1, 3*g.Width()/designScaled().ScrollSpeed+7)
	if g.Offset() > 0 || g.Offset() <= -g.Width() {
		t.Errorf("offset %g outside range after a long frame", g.Offset())
	}
}

func TestGroundDrawsTwoTiles(t *testing.T) {
	g := NewGround(designScaled())
	g.Update(1, 100)

	rec := &recorder{}
	g.Draw(rec)
	if len(rec.sprites) != 2 {
		t.Fatalf("expected 2 ground blits, got %d", len(rec.sprites))
	}
	if rec.sprites[1].dst.X-rec.sprites[0].dst.X != g.Width() {
		t.Error("second tile should start where the first ends")
	}
}

func TestObstacleSpawnerGap(t *testing.T) {
	s := designScaled()
	rnd := &seqRandom{floats: []float64{0, 0.3, 0.99, 0.5}, ints: []int{0, 3, 5, 1, 4}}
	sp := NewObstacleSpawner(s, rnd)

	speed := 1.0
	for i := 0; i < 20000; i++ {
		sp.Update(speed, 16.7)
		speed += 16.7 * s.SpeedIncrement

		obs := sp.Obstacles()
		for j := 1; j < len(obs); j++ {
			gap := obs[j].X - obs[j-1].Right()
			if gap < s.MinGap-1e-9 {
				t.Fatalf("gap %g between obstacles %d and %d below minimum %g", gap, j-1, j, s.MinGap)
			}
		}
		for j, o := range obs {
			if o.Right() < 0 {
				t.Fatalf("obstacle %d fully off-screen was not evicted", j)
			}
			if math.Abs(o.Y+o.Height-s.Height) > 1e-9 {
				t.Fatalf("obstacle %d does not stand on the bottom edge", j)
			}
		}
	}
}

func TestObstacleSpawnerFirstSpawnAtRightEdge(t *testing.T) {
	s := designScaled()
	sp := NewObstacleSpawner(s, fixedRandom{f: 0.5, i: 2})
	sp.Update(1, 16.7)

	obs := sp.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("expected one obstacle, got %d", len(obs))
	}
	if obs[0].X != s.Width {
		t.Errorf("spawned at x=%g, expected %g", obs[0].X, s.Width)
	}
	if obs[0].Width != s.ObstacleSizes[2].Width {
		t.Errorf("width = %g, expected preset 2", obs[0].Width)
	}
	wantGap := (s.MinGap + 0.5*(s.MaxGap-s.MinGap)) * 1
	if sp.NextGap() != wantGap {
		t.Errorf("NextGap() = %g, expected %g", sp.NextGap(), wantGap)
	}
}

func TestObstacleEvictionIsFIFO(t *testing.T) {
	sp := NewObstacleSpawner(designScaled(), fixedRandom{})
	sp.obstacles = append(sp.obstacles,
		Obstacle{X: -50, Width: 10},
		Obstacle{X: -5, Width: 10},
		Obstacle{X: 300, Width: 10},
	)
	sp.nextGap = 1e9 // Suppress spawning
	sp.Update(1, 0)

	obs := sp.Obstacles()
	if len(obs) != 2 || obs[0].X != -5 {
		t.Errorf("expected the off-screen obstacle to be evicted, got %+v", obs)
	}
}

func TestCollideWith(t *testing.T) {
	s := designScaled()
	p := NewPlayer(s)
	sp := NewObstacleSpawner(s, fixedRandom{})
	pr := p.Rect()

	tests := []struct {
		name string
		obs  Obstacle
		want bool
	}{
		{"overlapping", Obstacle{X: pr.X + 5, Y: pr.Y + 5, Width: 20, Height: 20}, true},
		{"touching right edge", Obstacle{X: pr.Right(), Y: pr.Y, Width: 20, Height: 20}, false},
		{"far right", Obstacle{X: 500, Y: pr.Y, Width: 20, Height: 20}, false},
		{"below", Obstacle{X: pr.X, Y: pr.Bottom() + 1, Width: 20, Height: 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp.obstacles = []Obstacle{tc.obs}
			if got := sp.CollideWith(p); got != tc.want {
				t.Errorf("CollideWith() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestObstacleImagesChosenPerPreset(t *testing.T) {
	s := designScaled()
	rnd := &seqRandom{floats: []float64{0}, ints: []int{7, 2, 11, 0, 4, 9}}
	sp := NewObstacleSpawner(s, rnd)

	want := []string{
		s.ObstacleImages[7], s.ObstacleImages[2], s.ObstacleImages[11],
		s.ObstacleImages[0], s.ObstacleImages[4], s.ObstacleImages[9],
	}
	for i, p := range sp.presets {
		if p.image != want[i] {
			t.Errorf("preset %d image = %q, expected %q", i, p.image, want[i])
		}
	}
}

func TestScore(t *testing.T) {
	store := &MemoryHighScore{value: 200}
	sc := NewScore(designScaled(), store)
	if err := sc.Load(); err != nil {
		t.Fatal(err)
	}
	if sc.HighScore() != 200 {
		t.Fatalf("HighScore() = %d, expected 200", sc.HighScore())
	}

	sc.Update(1000)
	if sc.Value() != 10 {
		t.Errorf("Value() = %d after 1000ms, expected 10", sc.Value())
	}

	score, high := sc.Text()
	if score != "000010" || high != "HI 000200" {
		t.Errorf("Text() = %q, %q", score, high)
	}

	// Lower score never overwrites
	if err := sc.SetHighScore(); err != nil {
		t.Fatal(err)
	}
	if hs, _ := store.HighScore(); hs != 200 {
		t.Errorf("stored high score = %d, expected 200", hs)
	}

	sc.Update(30000)
	if err := sc.SetHighScore(); err != nil {
		t.Fatal(err)
	}
	if hs, _ := store.HighScore(); hs != 310 {
		t.Errorf("stored high score = %d, expected 310", hs)
	}

	sc.Reset()
	if sc.Value() != 0 || sc.HighScore() != 310 {
		t.Errorf("after Reset: value %d, high %d", sc.Value(), sc.HighScore())
	}
}

type failingStore struct{}

func (failingStore) HighScore() (int, error) { return 0, errors.New("disk gone") }
func (failingStore) SetHighScore(int) error  { return errors.New("disk gone") }

func TestScoreStoreFailure(t *testing.T) {
	sc := NewScore(designScaled(), failingStore{})
	if err := sc.Load(); err == nil {
		t.Error("Load() should report the store error")
	}
	sc.Update(500)
	if err := sc.SetHighScore(); err == nil {
		t.Error("SetHighScore() should report the store error")
	}
	// The session still remembers it
	if sc.HighScore() != 5 {
		t.Errorf("HighScore() = %d, expected 5", sc.HighScore())
	}
}

// readFailStore fails reads but accepts writes.
type readFailStore struct {
	writes []int
}

func (s *readFailStore) HighScore() (int, error) { return 0, errors.New("read timeout") }

func (s *readFailStore) SetHighScore(score int) error {
	s.writes = append(s.writes, score)
	return nil
}

func TestScoreSetHighScoreReportsReadFailure(t *testing.T) {
	tests := []struct {
		name       string
		cached     int
		elapsed    float64
		wantWrites int
	}{
		{"below cached high score", 500, 1000, 0},
		{"beats cached high score", 5, 1000, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &readFailStore{}
			sc := NewScore(designScaled(), store)
			sc.highScore = tc.cached
			sc.Update(tc.elapsed)

			err := sc.SetHighScore()
			if err == nil || !strings.Contains(err.Error(), "read timeout") {
				t.Errorf("SetHighScore() = %v, expected the read error", err)
			}
			if len(store.writes) != tc.wantWrites {
				t.Errorf("writes = %v, expected %d", store.writes, tc.wantWrites)
			}
		})
	}
}

func TestPlaylistRoundRobin(t *testing.T) {
	pl := NewPlaylist([]string{"a", "b", "c"})
	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, pl.Next())
	}
	want := []string{"a", "b", "c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tracks = %v, expected %v", got, want)
		}
	}

	if NewPlaylist(nil).Next() != "" {
		t.Error("empty playlist should return empty track")
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		state  State
		action core.Action
		want   bool
	}{
		{StateWaiting, core.ActionStart, true},
		{StateWaiting, core.ActionJump, true},
		{StateWaiting, core.ActionRestart, false},
		{StateRunning, core.ActionJump, true},
		{StateRunning, core.ActionStart, false},
		{StateRunning, core.ActionRestart, false},
		{StateGameOver, core.ActionRestart, true},
		{StateGameOver, core.ActionJump, true},
		{StateGameOver, core.ActionQuit, false},
	}

	for _, tc := range tests {
		if got := Accepts(tc.state, tc.action); got != tc.want {
			t.Errorf("Accepts(%s, %s) = %v, expected %v", tc.state, tc.action, got, tc.want)
		}
	}
}
