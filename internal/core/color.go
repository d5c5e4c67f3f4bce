package core

// Color is a logical foreground colour. The platform layer maps it to a
// terminal palette.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Brighten returns the bright variant of a base colour, used for hit flashes.
func (c Color) Brighten() Color {
	if c >= ColorRed && c <= ColorCyan {
		return c + (ColorBrightRed - ColorRed)
	}
	if c == ColorGray || c == ColorWhite {
		return ColorBrightWhite
	}
	return c
}
