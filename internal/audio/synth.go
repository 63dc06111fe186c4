package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Note is one step of a melody. A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// oscillator generates a single wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator streamer.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := waveAt(o.wave, o.phase)
		if o.freq == 0 {
			val = 0
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope fades a stream in and out linearly.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope applies an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero volume
// is handled by silencing.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Melody renders a note sequence as one finite streamer.
func Melody(notes []Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.Freq, n.Duration, wave, rate)
		parts = append(parts, NewEnvelope(osc, n.Duration, 5*time.Millisecond, n.Duration/4, rate))
	}
	return beep.Seq(parts...)
}

// Frequencies of the notes used below.
const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteG5 = 783.99
)

const beat = 150 * time.Millisecond

// roundTheme is a short bouncy loop played while a round is running.
var roundTheme = []Note{
	{noteC5, beat}, {noteE5, beat}, {noteG5, beat}, {noteE5, beat},
	{noteD5, beat}, {noteG4, beat}, {noteC5, 2 * beat},
	{noteA4, beat}, {noteC5, beat}, {noteE5, beat}, {noteC5, beat},
	{noteD5, 2 * beat}, {0, 2 * beat},
}

// gameOverCue is a falling three-note phrase.
var gameOverCue = []Note{
	{noteG4, 120 * time.Millisecond},
	{noteE4, 120 * time.Millisecond},
	{noteC4, 360 * time.Millisecond},
}

// RoundMusic returns an endless round theme.
func RoundMusic(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.StreamerFunc(loopTheme(rate)), vol)
}

// loopTheme restarts the theme whenever it runs out, so the loop never ends.
func loopTheme(rate beep.SampleRate) func([][2]float64) (int, bool) {
	current := Melody(roundTheme, WaveTriangle, rate)
	return func(samples [][2]float64) (int, bool) {
		filled := 0
		for filled < len(samples) {
			n, ok := current.Stream(samples[filled:])
			filled += n
			if !ok || n == 0 {
				current = Melody(roundTheme, WaveTriangle, rate)
			}
		}
		return filled, true
	}
}

// GameOverCue returns the finite game-over phrase.
func GameOverCue(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(Melody(gameOverCue, WaveSquare, rate), vol)
}

// MelodyDuration sums the note lengths.
func MelodyDuration(notes []Note) time.Duration {
	var d time.Duration
	for _, n := range notes {
		d += n.Duration
	}
	return d
}
