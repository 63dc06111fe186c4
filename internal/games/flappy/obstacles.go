package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ObstacleSet holds live obstacles in spawn order. Obstacles that leave the
// field are only marked during an update pass and removed afterwards, so the
// pass can index the slice freely.
type ObstacleSet struct {
	items   []Obstacle
	retired []int // indices marked during the current pass, ascending
	nextID  ObstacleID
}

// NewObstacleSet creates an empty set.
func NewObstacleSet() *ObstacleSet {
	return &ObstacleSet{
		items:   make([]Obstacle, 0, 8),
		retired: make([]int, 0, 2),
	}
}

// Reset removes all obstacles. IDs keep growing so they stay unique for the
// lifetime of the set.
func (s *ObstacleSet) Reset() {
	s.items = s.items[:0]
	s.retired = s.retired[:0]
}

// Len returns the number of live obstacles.
func (s *ObstacleSet) Len() int {
	return len(s.items)
}

// Items returns the live obstacles. The slice is only valid until the next update.
func (s *ObstacleSet) Items() []Obstacle {
	return s.items
}

// Copy returns an independent copy of the live obstacles.
func (s *ObstacleSet) Copy() []Obstacle {
	out := make([]Obstacle, len(s.items))
	copy(out, s.items)
	return out
}

// Spawn creates an obstacle just past the right edge of the field with a
// random gap position and label, and returns it.
func (s *ObstacleSet) Spawn(rng Rand, cfg config.FlappyConfig, gapSize float64) Obstacle {
	minTop := cfg.Obstacles.MinGapTop
	maxTop := cfg.Field.Height - gapSize - cfg.Obstacles.BottomMargin

	gapTop := minTop
	if maxTop > minTop {
		gapTop = math.Floor(minTop + rng.Float64()*(maxTop-minTop))
	}

	label := ""
	if len(cfg.Labels) > 0 {
		label = cfg.Labels[rng.Intn(len(cfg.Labels))]
	}

	o := Obstacle{
		ID:     s.nextID,
		X:      cfg.Field.Width + cfg.Obstacles.Width,
		GapTop: gapTop,
		Label:  label,
	}
	s.nextID++
	s.items = append(s.items, o)
	return o
}

// add appends an obstacle as-is. Used by tests to place obstacles precisely.
func (s *ObstacleSet) add(o Obstacle) {
	if o.ID >= s.nextID {
		s.nextID = o.ID + 1
	}
	s.items = append(s.items, o)
}

// markRetired schedules the obstacle at index i for removal.
func (s *ObstacleSet) markRetired(i int) {
	s.retired = append(s.retired, i)
}

// compact drops every obstacle marked during the pass, keeping spawn order.
func (s *ObstacleSet) compact() {
	if len(s.retired) == 0 {
		return
	}

	kept := s.items[:0]
	next := 0
	for i, o := range s.items {
		if next < len(s.retired) && s.retired[next] == i {
			next++
			continue
		}
		kept = append(kept, o)
	}
	// Zero the tail so labels are not kept alive by the backing array
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Obstacle{}
	}
	s.items = kept
	s.retired = s.retired[:0]
}
