// Package render draws session snapshots onto a character screen buffer.
// Field coordinates are scaled to whatever size the buffer has.
package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Visual elements
const (
	BlockChar     = '█'
	GroundChar    = '▒'
	HorizonChar   = '─'
	CharacterBody = '●'
	NoseUp        = '↗'
	NoseLevel     = '→'
	NoseDown      = '↘'
)

// Label panel geometry in field units, above the gap.
const (
	panelHeight = 26
	panelMargin = 8
	panelBleed  = 6
)

// Ground strip in field units, measured from the bottom.
const (
	groundHeight  = 80
	horizonOffset = 82
)

// Renderer keeps a screen buffer and redraws it for every frame.
type Renderer struct {
	screen *core.Screen
}

var _ flappy.Renderer = (*Renderer)(nil)

// New creates a renderer with a width x height cell buffer.
func New(width, height int) *Renderer {
	return &Renderer{screen: core.NewScreen(width, height)}
}

// Screen returns the buffer holding the last frame.
func (r *Renderer) Screen() *core.Screen {
	return r.screen
}

// Resize changes the buffer size. The next frame redraws everything.
func (r *Renderer) Resize(width, height int) {
	r.screen.Resize(width, height)
}

// RenderFrame implements flappy.Renderer.
func (r *Renderer) RenderFrame(snap flappy.Snapshot) {
	Draw(r.screen, snap)
}

// viewport maps field coordinates onto screen cells.
type viewport struct {
	sx, sy float64
	w, h   int
}

func newViewport(dst *core.Screen, fieldW, fieldH float64) viewport {
	v := viewport{w: dst.Width(), h: dst.Height()}
	if fieldW > 0 {
		v.sx = float64(v.w) / fieldW
	}
	if fieldH > 0 {
		v.sy = float64(v.h) / fieldH
	}
	return v
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// Draw renders one snapshot onto dst.
func Draw(dst *core.Screen, snap flappy.Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := newViewport(dst, snap.Field.Width, snap.Field.Height)

	drawBackground(dst, v, snap)
	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, snap, o)
	}
	drawCharacter(dst, v, snap)
	drawHUD(dst, snap)

	switch snap.Phase {
	case flappy.PhaseStart:
		drawMessage(dst, core.ColorYellow,
			"FLAPPY SHOPINTOONS",
			"",
			"SPACE to play",
			fmt.Sprintf("Profile: %s  [1-4]", snap.Profile.DisplayName()),
		)
	case flappy.PhaseCountdown:
		drawMessage(dst, core.ColorYellow, CountdownLabel(snap))
	case flappy.PhaseGameOver:
		lines := []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d  |  Best: %d", snap.Round.Score, snap.Round.BestScore),
		}
		if snap.NewBest() {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "R to retry  |  1-4 profile")
		drawMessage(dst, core.ColorRed, lines...)
	}
}

// CountdownLabel returns the text shown during the countdown. The last
// fraction of a second below the final whole second reads "GO!".
func CountdownLabel(snap flappy.Snapshot) string {
	if secs := snap.CountdownSeconds(); secs > 0 {
		return fmt.Sprintf("%d", secs)
	}
	return "GO!"
}

// Background star patterns, one per presentation seed.
var starPatterns = []struct {
	glyph  rune
	stride int
}{
	{'·', 23},
	{'.', 17},
	{'*', 31},
}

func drawBackground(dst *core.Screen, v viewport, snap flappy.Snapshot) {
	pattern := starPatterns[0]
	if snap.Background > 0 {
		pattern = starPatterns[snap.Background%len(starPatterns)]
	}

	groundTop := v.row(snap.Field.Height - groundHeight)
	for y := 0; y < groundTop && y < v.h; y++ {
		for x := 0; x < v.w; x++ {
			if (x*7+y*13+snap.Background*5)%pattern.stride == 0 {
				dst.SetColored(x, y, pattern.glyph, core.ColorDeepPurple)
			}
		}
	}

	if horizon := v.row(snap.Field.Height - horizonOffset); horizon >= 0 && horizon < v.h {
		dst.DrawHLine(0, horizon, v.w, HorizonChar, core.ColorYellow)
	}
	for y := max(groundTop, 0); y < v.h; y++ {
		dst.DrawHLine(0, y, v.w, GroundChar, core.ColorPurple)
	}
}

func drawObstacle(dst *core.Screen, v viewport, snap flappy.Snapshot, o flappy.Obstacle) {
	left := v.col(o.X)
	right := v.col(o.X + snap.ObstacleWidth)
	if right == left {
		right = left + 1
	}
	gapTop := v.row(o.GapTop)
	gapBottom := v.row(o.GapBottom(snap.Profile.GapSize))

	for x := max(left, 0); x < right && x < v.w; x++ {
		for y := 0; y < gapTop && y < v.h; y++ {
			dst.SetColored(x, y, BlockChar, core.ColorPink)
		}
		for y := max(gapBottom, 0); y < v.h; y++ {
			dst.SetColored(x, y, BlockChar, core.ColorMint)
		}
	}

	drawLabel(dst, v, snap, o)
}

// drawLabel writes the obstacle label on a panel above the gap, when the
// panel fits inside the field.
func drawLabel(dst *core.Screen, v viewport, snap flappy.Snapshot, o flappy.Obstacle) {
	panelY := o.GapTop - panelHeight - panelMargin
	if o.Label == "" || panelY <= 0 {
		return
	}

	left := v.col(o.X - panelBleed)
	right := v.col(o.X + snap.ObstacleWidth + panelBleed)
	width := right - left
	if width <= 0 {
		return
	}

	text := o.Label
	if utf8.RuneCountInString(text) > width {
		text = string([]rune(text)[:width])
	}
	y := v.row(panelY + panelHeight/2)
	x := left + (width-utf8.RuneCountInString(text))/2
	dst.DrawHLine(left, y, width, ' ', core.ColorDefault)
	dst.DrawText(x, y, text, core.ColorYellow)
}

// NoseGlyph picks the character's nose from the tilt hint.
func NoseGlyph(tilt float64) rune {
	switch {
	case tilt < -0.15:
		return NoseUp
	case tilt > 0.15:
		return NoseDown
	default:
		return NoseLevel
	}
}

func drawCharacter(dst *core.Screen, v viewport, snap flappy.Snapshot) {
	x := v.col(snap.Character.X)
	y := core.Clamp(v.row(snap.Character.Y), 0, v.h-1)
	dst.SetColored(x, y, CharacterBody, core.ColorMint)
	dst.SetColored(x+1, y, NoseGlyph(snap.Tilt()), core.ColorWhite)
}

func drawHUD(dst *core.Screen, snap flappy.Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.Round.Score), core.ColorWhite)

	best := fmt.Sprintf(" Best: %d ", snap.Round.BestScore)
	dst.DrawText(dst.Width()-utf8.RuneCountInString(best)-1, 0, best, core.ColorWhite)

	if h := dst.Height(); h > 2 {
		dst.DrawTextCentered(h-1, snap.Profile.DisplayName(), core.ColorGray)
	}
}

// drawMessage draws a bordered box in the center of the screen.
func drawMessage(dst *core.Screen, c core.Color, lines ...string) {
	w, h := dst.Width(), dst.Height()

	inner := 0
	for _, l := range lines {
		inner = max(inner, utf8.RuneCountInString(l))
	}
	boxW := min(inner+4, w)
	boxH := min(len(lines)+2, h)
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, l := range lines {
		y := box.Y + 1 + i
		if y >= box.Bottom()-1 {
			break
		}
		x := box.X + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawText(x, y, l, c)
	}
}
