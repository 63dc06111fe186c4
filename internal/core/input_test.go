package core

import (
	"testing"
	"time"
)

func TestActionProfileIndex(t *testing.T) {
	tests := []struct {
		action Action
		index  int
		ok     bool
	}{
		{ActionProfile1, 0, true},
		{ActionProfile4, 3, true},
		{ActionPrimary, 0, false},
		{ActionQuit, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			idx, ok := tc.action.ProfileIndex()
			if idx != tc.index || ok != tc.ok {
				t.Errorf("ProfileIndex() = (%d, %v), expected (%d, %v)", idx, ok, tc.index, tc.ok)
			}
		})
	}
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickInterval(); got != time.Second/60 {
		t.Errorf("TickInterval() = %v, expected %v", got, time.Second/60)
	}

	cfg.TickRate = 0
	if got := cfg.TickInterval(); got != time.Second/60 {
		t.Errorf("TickInterval() with zero rate = %v, expected fallback %v", got, time.Second/60)
	}
}
