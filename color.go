package drawing

import "image/color"

// Color is a non-premultiplied RGBA color packed as 0xRRGGBBAA.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0x000000FF
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFF0000FF
	Green       Color = 0x00FF00FF
	Blue        Color = 0x0000FFFF
)

// RGBA creates a color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Red returns the red component.
func (c Color) Red() uint8 { return uint8(c >> 24) }

// Green returns the green component.
func (c Color) Green() uint8 { return uint8(c >> 16) }

// Blue returns the blue component.
func (c Color) Blue() uint8 { return uint8(c >> 8) }

// Alpha returns the alpha component.
func (c Color) Alpha() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xFF | Color(a)
}

// NRGBA converts c to a standard color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}
