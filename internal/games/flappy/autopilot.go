package flappy

// Pilot decides, once per tick, whether to trigger the primary action.
type Pilot interface {
	ShouldFlap(snap Snapshot) bool
}

// Autopilot is a simple heuristic pilot used for headless simulation and
// demos. It aims slightly below the middle of the next gap and flaps whenever
// the character is falling below that line.
type Autopilot struct {
	// Bias shifts the aim point inside the gap: 0.5 is the middle,
	// larger values aim lower. Zero selects 0.6.
	Bias float64
}

// ShouldFlap implements Pilot.
func (a Autopilot) ShouldFlap(snap Snapshot) bool {
	if snap.Phase != PhasePlaying {
		return false
	}

	c := snap.Character
	target := a.target(snap)

	// Look one tick ahead: flap if the next position is below the aim line
	// and the character is not already climbing.
	next := c.Y + c.VY + snap.Profile.Gravity
	return next > target && c.VY >= 0
}

func (a Autopilot) target(snap Snapshot) float64 {
	bias := a.Bias
	if bias == 0 {
		bias = 0.6
	}

	c := snap.Character
	for _, o := range snap.Obstacles {
		// First obstacle the character has not fully cleared yet
		if o.HSpan(snap.ObstacleWidth).Max >= c.HSpan().Min {
			return o.GapTop + snap.Profile.GapSize*bias
		}
	}
	return snap.Field.Height / 2
}

// PlayRound drives a full round headlessly: it restarts the session, feeds
// ticks of deltaMs and lets the pilot flap, until the round ends or maxTicks
// have run (0 means no limit). It returns the final snapshot.
//
// A round left unfinished by an earlier call is abandoned, never continued.
// Abandoned rounds are not recorded.
func PlayRound(s *Session, pilot Pilot, deltaMs float64, maxTicks int) Snapshot {
	s.abandonRound()

	for ticks := 0; maxTicks <= 0 || ticks < maxTicks; ticks++ {
		if s.Phase() == PhasePlaying && pilot != nil && pilot.ShouldFlap(s.Snapshot()) {
			s.Primary()
		}
		s.Tick(deltaMs)
		if s.Phase() == PhaseGameOver {
			break
		}
	}
	return s.Snapshot()
}
