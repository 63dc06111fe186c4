// Package flappy implements the simulation core of a Flappy Bird-style game:
// a character falls under constant gravity and must pass through the gaps of
// a stream of obstacles by timing upward impulses.
//
// A Session owns all game state. It is driven by one Tick per display refresh
// and by input events applied between ticks; it never blocks, never spawns
// goroutines and never draws. Renderers consume Snapshot values.
package flappy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Errors returned for profile switches. Both are invalid-input conditions
// that callers are free to ignore.
var (
	ErrProfileLocked  = errors.New("flappy: profile can only change before or after a round")
	ErrUnknownProfile = errors.New("flappy: unknown profile")
)

// Options configures a new Session. Zero values select sensible defaults.
type Options struct {
	Config   config.FlappyConfig // zero value: config.DefaultFlappyConfig()
	Profile  string              // starting profile; empty selects the config default
	Seed     int64               // seed for the default random source
	Rand     Rand                // overrides Seed when set
	Store    BestScoreStore      // nil keeps the best score in memory
	Audio    Audio               // nil disables audio
	Recorder RoundRecorder       // optional round history sink
	Logger   *log.Logger         // nil uses log.Default()
}

// Session is one independent game: character, obstacles, round counters and
// the phase state machine. It is not safe for concurrent use; the driver
// serializes ticks and input events.
type Session struct {
	cfg      config.FlappyConfig
	profile  config.Profile
	rng      Rand
	store    BestScoreStore
	audio    Audio
	recorder RoundRecorder
	logger   *log.Logger

	phase      Phase
	character  Character
	obstacles  *ObstacleSet
	round      RoundState
	background int
	endReason  EndReason
}

// NewSession creates a session in the Start phase and loads the best score.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if len(cfg.Profiles) == 0 {
		cfg = config.DefaultFlappyConfig()
	}

	s := &Session{
		cfg:       cfg,
		profile:   cfg.StartProfile(opts.Profile),
		rng:       opts.Rand,
		store:     opts.Store,
		audio:     opts.Audio,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		phase:     PhaseStart,
		obstacles: NewObstacleSet(),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(opts.Seed))
	}
	if s.store == nil {
		s.store = &NopStore{}
	}
	if s.audio == nil {
		s.audio = NopAudio{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.resetEntities()
	s.round.BestScore = s.loadBestScore()
	return s
}

// loadBestScore reads the persisted best score. Any failure counts as "no
// best score yet"; the game must start even when storage is broken.
func (s *Session) loadBestScore() int {
	best, ok, err := s.store.BestScore()
	if err != nil {
		s.logger.Warn("could not load best score", "error", err)
		return 0
	}
	if !ok || best < 0 {
		return 0
	}
	return best
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Profile returns the active profile.
func (s *Session) Profile() config.Profile {
	return s.profile
}

// Config returns the session configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}

// Score returns the current round score.
func (s *Session) Score() int {
	return s.round.Score
}

// BestScore returns the best score known to the session.
func (s *Session) BestScore() int {
	return s.round.BestScore
}

// Primary applies the context-dependent primary action (tap, click, space):
// start the countdown from Start, flap while Playing, nothing otherwise.
// Game over deliberately requires the explicit Restart action.
// Returns whether the action had an effect.
func (s *Session) Primary() bool {
	switch s.phase {
	case PhaseStart:
		s.beginCountdown()
		return true
	case PhasePlaying:
		s.flap()
		return true
	}
	return false
}

// Restart starts a new countdown from Start or GameOver.
// Returns false (and does nothing) in any other phase.
func (s *Session) Restart() bool {
	if !s.phase.AllowsProfileSwitch() {
		return false
	}
	s.beginCountdown()
	return true
}

// SelectProfile switches to the named profile for the next round.
func (s *Session) SelectProfile(name string) error {
	if !s.phase.AllowsProfileSwitch() {
		return ErrProfileLocked
	}
	p, ok := s.cfg.Profile(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	s.profile = p
	return nil
}

// SelectProfileAt switches to the profile in the given slot (0-based).
func (s *Session) SelectProfileAt(index int) error {
	p, ok := s.cfg.ProfileAt(index)
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrUnknownProfile, index+1)
	}
	return s.SelectProfile(p.Name)
}

// Tick advances the session by one display frame. deltaMs is the wall-clock
// time since the previous tick; negative or NaN values count as zero.
//
// Physics is frame-coupled: each Playing tick integrates velocity and moves
// obstacles by exactly one step whatever deltaMs is. Only the spawn timer and
// the countdown consume deltaMs.
func (s *Session) Tick(deltaMs float64) {
	if math.IsNaN(deltaMs) || deltaMs < 0 {
		deltaMs = 0
	}

	switch s.phase {
	case PhaseCountdown:
		s.round.CountdownRemainingMs -= deltaMs
		if s.round.CountdownRemainingMs <= 0 {
			s.round.CountdownRemainingMs = 0
			s.phase = PhasePlaying
			s.audio.PlayRoundMusic()
		}
	case PhasePlaying:
		if reason := s.step(deltaMs); reason != EndNone {
			s.endRound(reason)
		}
	}
}

// Frame runs one tick and hands the resulting snapshot to r.
func (s *Session) Frame(deltaMs float64, r Renderer) {
	s.Tick(deltaMs)
	if r != nil {
		r.RenderFrame(s.Snapshot())
	}
}

func (s *Session) flap() {
	s.character.VY = s.profile.ImpulseVelocity
}

// beginCountdown resets the round and enters Countdown.
func (s *Session) beginCountdown() {
	s.resetEntities()
	best := s.round.BestScore
	s.round = RoundState{
		BestScore:            best,
		LastPassedID:         NoObstacle,
		CountdownRemainingMs: s.cfg.Round.CountdownMs,
	}
	s.endReason = EndNone
	if n := s.cfg.Round.Backgrounds; n > 0 {
		s.background = s.rng.Intn(n)
	}
	s.phase = PhaseCountdown
}

// abandonRound drops whatever round is in progress and starts a new
// countdown, in any phase.
func (s *Session) abandonRound() {
	if s.phase == PhasePlaying {
		s.audio.StopRoundMusic()
	}
	s.beginCountdown()
}

func (s *Session) resetEntities() {
	s.character = Character{
		X:      s.cfg.Character.X,
		Y:      s.cfg.Field.Height / 2,
		VY:     0,
		Radius: s.cfg.Character.Radius,
	}
	s.obstacles.Reset()
	s.round.LastPassedID = NoObstacle
}

// endRound freezes the session in GameOver and notifies collaborators.
func (s *Session) endRound(reason EndReason) {
	s.phase = PhaseGameOver
	s.endReason = reason
	s.audio.StopRoundMusic()
	s.audio.PlayGameOverCue()

	s.logger.Debug("round over",
		"profile", s.profile.Name,
		"score", s.round.Score,
		"best", s.round.BestScore,
		"reason", reason,
	)

	if s.recorder == nil {
		return
	}
	err := s.recorder.RecordRound(RoundResult{
		Profile:    s.profile.Name,
		Score:      s.round.Score,
		BestScore:  s.round.BestScore,
		Ticks:      s.round.Ticks,
		DurationMs: s.round.ElapsedMs,
		Reason:     reason,
	})
	if err != nil {
		s.logger.Warn("could not record round", "error", err)
	}
}
