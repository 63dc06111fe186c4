package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the renderers. ColorDefault leaves the terminal color alone.
const (
	ColorDefault Color = iota
	ColorPink          // upper obstacle segment
	ColorMint          // lower obstacle segment, character body
	ColorYellow        // labels, ground highlight
	ColorPurple        // background band
	ColorDeepPurple    // background band
	ColorWhite         // HUD text
	ColorGray          // dim hints
	ColorRed           // game over
)
