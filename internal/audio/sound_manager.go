// Package audio synthesizes the round music and the game-over cue with beep.
// Without a usable audio device the manager stays silent; the game never
// depends on sound.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// Default volumes, linear.
const (
	musicVolume = 0.25
	cueVolume   = 0.4
)

var _ flappy.Audio = (*SoundManager)(nil)

// SoundManager implements flappy.Audio on top of a beep mixer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	muted       bool
	initialized bool
}

// NewSoundManager creates a manager. A muted manager never touches the
// audio device.
func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Initialize opens the speaker. On error the manager stays silent and the
// caller may log the failure.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sound is actually being played.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// SetMuted toggles output. Muting stops the music immediately.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if muted {
		sm.stopMusicLocked()
	}
}

// PlayRoundMusic starts the round theme from the top.
func (sm *SoundManager) PlayRoundMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	sm.stopMusicLocked()
	sm.music = &beep.Ctrl{Streamer: RoundMusic(sampleRate, musicVolume)}
	sm.add(sm.music)
}

// StopRoundMusic stops the round theme.
func (sm *SoundManager) StopRoundMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stopMusicLocked()
}

func (sm *SoundManager) stopMusicLocked() {
	if sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = true
	sm.music.Streamer = nil // lets the mixer drop it
	speaker.Unlock()
	sm.music = nil
}

// PlayGameOverCue plays the short game-over phrase.
func (sm *SoundManager) PlayGameOverCue() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	sm.add(GameOverCue(sampleRate, cueVolume))
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.stopMusicLocked()
	speaker.Clear()
	sm.initialized = false
}
