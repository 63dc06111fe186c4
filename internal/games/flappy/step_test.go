package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestCollides(t *testing.T) {
	c := Character{X: 90, Y: 320, Radius: 16} // spans x [74,106], y [304,336]

	tests := []struct {
		name     string
		obstacle Obstacle
		want     bool
	}{
		{"ahead, not overlapping", Obstacle{X: 200, GapTop: 400}, false},
		{"touching front edge", Obstacle{X: 106, GapTop: 400}, false},
		{"overlapping front edge", Obstacle{X: 105.9, GapTop: 400}, true},
		{"touching back edge", Obstacle{X: 4, GapTop: 400}, false},
		{"inside gap", Obstacle{X: 60, GapTop: 250}, false},
		{"top edge exactly", Obstacle{X: 60, GapTop: 304}, false},
		{"top edge crossed", Obstacle{X: 60, GapTop: 304.01}, true},
		{"bottom edge exactly", Obstacle{X: 60, GapTop: 186}, false},
		{"bottom edge crossed", Obstacle{X: 60, GapTop: 185.99}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(c, tc.obstacle, 70, 150); got != tc.want {
				t.Errorf("Collides() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSpawnGapRange(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	tests := []struct {
		name    string
		rng     stubRand
		gap     float64
		wantTop float64
	}{
		{"lowest draw", stubRand{f: 0}, 150, 60},
		{"highest draw", stubRand{f: 0.999999}, 150, 389},
		{"middle draw", stubRand{f: 0.5}, 150, 225},
		{"collapsed range", stubRand{f: 0.7}, 500, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set := NewObstacleSet()
			o := set.Spawn(tc.rng, cfg, tc.gap)
			if o.GapTop != tc.wantTop {
				t.Errorf("GapTop = %v, expected %v", o.GapTop, tc.wantTop)
			}
			if o.X != 430 {
				t.Errorf("X = %v, expected 430", o.X)
			}
		})
	}
}

func TestSpawnLabelAndIDs(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	set := NewObstacleSet()

	a := set.Spawn(stubRand{n: 0}, cfg, 150)
	b := set.Spawn(stubRand{n: 3}, cfg, 150)

	if a.Label != cfg.Labels[0] || b.Label != cfg.Labels[3] {
		t.Errorf("labels = %q, %q", a.Label, b.Label)
	}
	if a.ID != 0 || b.ID != 1 {
		t.Errorf("ids = %d, %d, expected 0, 1", a.ID, b.ID)
	}

	set.Reset()
	c := set.Spawn(stubRand{}, cfg, 150)
	if c.ID != 2 {
		t.Errorf("id after Reset = %d, expected 2", c.ID)
	}

	cfg.Labels = nil
	if d := set.Spawn(stubRand{}, cfg, 150); d.Label != "" {
		t.Errorf("label without a pool = %q, expected empty", d.Label)
	}
}

func TestObstacleSetCompact(t *testing.T) {
	set := NewObstacleSet()
	for i := 0; i < 4; i++ {
		set.add(Obstacle{ID: ObstacleID(i), X: float64(i * 100), Label: "x"})
	}

	set.markRetired(0)
	set.markRetired(2)
	set.compact()

	items := set.Items()
	if len(items) != 2 {
		t.Fatalf("Len() = %d, expected 2", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 3 {
		t.Errorf("remaining ids = %d, %d, expected 1, 3", items[0].ID, items[1].ID)
	}

	// Compacting with nothing marked is a no-op
	set.compact()
	if set.Len() != 2 {
		t.Errorf("Len() = %d after empty compact", set.Len())
	}
}

func TestSpawnTimer(t *testing.T) {
	s := newPlayingSession(t, Options{Rand: stubRand{f: 0.5}})

	for i := 1; i < 100; i++ {
		hover(s)
		s.Tick(16)
		if s.obstacles.Len() != 0 {
			t.Fatalf("obstacle spawned early on tick %d", i)
		}
	}

	hover(s)
	s.Tick(16)
	if s.obstacles.Len() != 1 {
		t.Fatalf("expected a spawn on tick 100, have %d obstacles", s.obstacles.Len())
	}
	if s.round.SpawnTimerMs != 0 {
		t.Errorf("SpawnTimerMs = %v, expected reset to 0", s.round.SpawnTimerMs)
	}

	// The new obstacle already moved once this tick
	if got, want := s.obstacles.Items()[0].X, 430-2.2; got != want {
		t.Errorf("spawned X = %v, expected %v", got, want)
	}
}

func TestAtMostOneSpawnPerTick(t *testing.T) {
	s := newPlayingSession(t, Options{Rand: stubRand{f: 0.5}})

	hover(s)
	s.Tick(5000)

	if s.obstacles.Len() != 1 {
		t.Errorf("long frame spawned %d obstacles, expected 1", s.obstacles.Len())
	}
	if s.round.SpawnTimerMs != 0 {
		t.Errorf("SpawnTimerMs = %v, expected 0", s.round.SpawnTimerMs)
	}
}

// Scenario 2: an obstacle crossing the field scores once and is retired.
func TestObstaclePassAndRetire(t *testing.T) {
	s := newPlayingSession(t, Options{Seed: 1})
	s.obstacles.add(Obstacle{ID: 0, X: 430, GapTop: 250})

	scoredAt, retiredAt := 0, 0
	for tick := 1; tick <= 300; tick++ {
		hover(s)
		s.Tick(0)
		if s.Phase() != PhasePlaying {
			t.Fatalf("round ended on tick %d: %v", tick, s.Snapshot().EndReason)
		}
		if scoredAt == 0 && s.Score() == 1 {
			scoredAt = tick
		}
		if retiredAt == 0 && s.obstacles.Len() == 0 {
			retiredAt = tick
		}
	}

	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected exactly 1", s.Score())
	}
	if scoredAt != 171 {
		t.Errorf("scored on tick %d, expected 171", scoredAt)
	}
	if retiredAt != 228 {
		t.Errorf("retired on tick %d, expected 228", retiredAt)
	}
	if s.round.LastPassedID != 0 {
		t.Errorf("LastPassedID = %d, expected 0", s.round.LastPassedID)
	}
}

// Two obstacles passing within a few ticks each score once, even while the
// older one is still on screen after the newer one was counted.
func TestScoringExactlyOnce(t *testing.T) {
	s := newPlayingSession(t, Options{Seed: 1})
	s.obstacles.add(Obstacle{ID: 0, X: 56, GapTop: 250})
	s.obstacles.add(Obstacle{ID: 1, X: 60, GapTop: 250})

	for tick := 0; tick < 20; tick++ {
		hover(s)
		s.Tick(0)
	}

	if s.obstacles.Len() != 2 {
		t.Fatalf("both obstacles should still be live, have %d", s.obstacles.Len())
	}
	if s.Score() != 2 {
		t.Errorf("Score() = %d, expected 2", s.Score())
	}
	if s.round.LastPassedID != 1 {
		t.Errorf("LastPassedID = %d, expected 1", s.round.LastPassedID)
	}
}

func TestObstacleCollisionEndsRound(t *testing.T) {
	rounds := &roundLog{}
	s := newPlayingSession(t, Options{Seed: 1, Recorder: rounds})
	// Gap far below the character
	s.obstacles.add(Obstacle{ID: 0, X: 120, GapTop: 400})

	for i := 0; i < 100 && s.Phase() == PhasePlaying; i++ {
		hover(s)
		s.Tick(0)
	}

	if s.Phase() != PhaseGameOver {
		t.Fatal("expected the obstacle to end the round")
	}
	if got := s.Snapshot().EndReason; got != EndObstacle {
		t.Errorf("EndReason = %v, expected obstacle", got)
	}
	if len(rounds.rounds) != 1 || rounds.rounds[0].Reason != EndObstacle {
		t.Errorf("recorded rounds = %+v", rounds.rounds)
	}

	// The game-over frame stays frozen
	before := s.Snapshot()
	s.Tick(16)
	if after := s.Snapshot(); after.Obstacles[0].X != before.Obstacles[0].X {
		t.Error("obstacles moved after game over")
	}
}

// Random play never leaves the character out of bounds while playing, never
// places a gap out of range and never reuses an obstacle id.
func TestSimulationInvariants(t *testing.T) {
	for _, profile := range config.BuiltinProfiles() {
		t.Run(profile.Name, func(t *testing.T) {
			s := NewSession(Options{Profile: profile.Name, Seed: 99, Logger: quietLogger()})
			input := rand.New(rand.NewSource(7))
			cfg := s.Config()
			maxTop := cfg.Field.Height - profile.GapSize - cfg.Obstacles.BottomMargin

			lastID := NoObstacle
			score := 0
			for round := 0; round < 5; round++ {
				s.Restart()
				s.Tick(cfg.Round.CountdownMs)
				score = 0

				for tick := 0; tick < 5000 && s.Phase() == PhasePlaying; tick++ {
					if input.Intn(9) == 0 {
						s.Primary()
					}
					s.Tick(16)
					snap := s.Snapshot()

					if snap.Round.Score < score {
						t.Fatalf("score decreased from %d to %d", score, snap.Round.Score)
					}
					score = snap.Round.Score
					if snap.Round.BestScore < snap.Round.Score {
						t.Fatalf("best %d below score %d", snap.Round.BestScore, snap.Round.Score)
					}

					if snap.Phase == PhasePlaying {
						v := snap.Character.VSpan()
						if v.Min < 0 || v.Max > cfg.Field.Height {
							t.Fatalf("character out of bounds while playing: %+v", snap.Character)
						}
					}

					for _, o := range snap.Obstacles {
						if o.GapTop < cfg.Obstacles.MinGapTop || o.GapTop > maxTop {
							t.Fatalf("gap top %v out of range", o.GapTop)
						}
						if o.ID > lastID {
							lastID = o.ID
						}
					}
					for i := 1; i < len(snap.Obstacles); i++ {
						if snap.Obstacles[i].ID <= snap.Obstacles[i-1].ID {
							t.Fatalf("obstacle ids not increasing: %d then %d",
								snap.Obstacles[i-1].ID, snap.Obstacles[i].ID)
						}
					}
				}
			}

			// Round resets never rewind the id counter
			s.Restart()
			s.Tick(cfg.Round.CountdownMs)
			hover(s)
			s.Tick(profile.SpawnIntervalMs)
			items := s.obstacles.Items()
			if len(items) != 1 || items[0].ID <= lastID {
				t.Errorf("spawn after restart reused ids: last %d, got %+v", lastID, items)
			}
		})
	}
}
