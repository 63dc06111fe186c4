package flappy

// step runs one Playing tick and reports whether the round ended.
//
// Order matters: integrate, bounds check,
// spawn, then per obstacle move, collide, score and retire. A terminal event
// returns immediately, leaving the remaining obstacles untouched for the
// frozen game-over frame.
func (s *Session) step(deltaMs float64) EndReason {
	p := s.profile
	c := &s.character

	s.round.Ticks++
	s.round.ElapsedMs += deltaMs

	c.VY += p.Gravity
	c.Y += c.VY

	if reason := outOfBounds(*c, s.cfg.Field.Height); reason != EndNone {
		return reason
	}

	// At most one spawn per tick, even after a long frame gap
	s.round.SpawnTimerMs += deltaMs
	if s.round.SpawnTimerMs >= p.SpawnIntervalMs {
		s.obstacles.Spawn(s.rng, s.cfg, p.GapSize)
		s.round.SpawnTimerMs = 0
	}

	defer s.obstacles.compact()

	width := s.cfg.Obstacles.Width
	items := s.obstacles.Items()
	for i := range items {
		o := &items[i]
		o.X -= p.HorizontalSpeed

		if Collides(*c, *o, width, p.GapSize) {
			return EndObstacle
		}

		if o.HSpan(width).Mid() < c.X && o.ID > s.round.LastPassedID {
			s.scorePass(o.ID)
		}

		if o.HSpan(width).Max < 0 {
			s.obstacles.markRetired(i)
		}
	}
	return EndNone
}
