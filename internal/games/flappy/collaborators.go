package flappy

// BestScoreStore persists the best score as a single integer.
// BestScore reports ok=false when nothing (or nothing valid) is stored.
type BestScoreStore interface {
	BestScore() (score int, ok bool, err error)
	SetBestScore(score int) error
}

// Audio plays round music and cues. Calls are fire-and-forget.
type Audio interface {
	PlayRoundMusic()
	StopRoundMusic()
	PlayGameOverCue()
}

// Renderer consumes a read-only snapshot once per tick.
type Renderer interface {
	RenderFrame(snap Snapshot)
}

// RoundRecorder receives the result of every finished round.
type RoundRecorder interface {
	RecordRound(result RoundResult) error
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Profile    string
	Score      int
	BestScore  int
	Ticks      int
	DurationMs float64
	Reason     EndReason
}

// NopStore keeps the best score in memory only.
type NopStore struct {
	best  int
	saved bool
}

func (s *NopStore) BestScore() (int, bool, error) { return s.best, s.saved, nil }

func (s *NopStore) SetBestScore(score int) error {
	s.best = score
	s.saved = true
	return nil
}

// NopAudio discards all audio requests.
type NopAudio struct{}

func (NopAudio) PlayRoundMusic()  {}
func (NopAudio) StopRoundMusic()  {}
func (NopAudio) PlayGameOverCue() {}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Snapshot)

func (f RendererFunc) RenderFrame(snap Snapshot) { f(snap) }

// Renderers fans a frame out to several renderers in order.
type Renderers []Renderer

func (rs Renderers) RenderFrame(snap Snapshot) {
	for _, r := range rs {
		r.RenderFrame(snap)
	}
}
