package flappy

// scorePass counts one passed obstacle. A new best score is persisted
// immediately, not at the end of the round.
func (s *Session) scorePass(id ObstacleID) {
	s.round.LastPassedID = id
	s.round.Score++

	if s.round.Score <= s.round.BestScore {
		return
	}
	s.round.BestScore = s.round.Score
	s.round.NewBest = true
	if err := s.store.SetBestScore(s.round.BestScore); err != nil {
		s.logger.Warn("could not save best score", "score", s.round.BestScore, "error", err)
	}
}
