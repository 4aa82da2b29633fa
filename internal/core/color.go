package core

import (
	"fmt"
	"image/color"
)

// Color is a named palette entry. Terminal hosts map it to ANSI 256-color codes,
// graphical hosts to RGBA.
type Color uint8

// Palette used by the game.
const (
	ColorDefault Color = iota
	ColorGray
	ColorDarkGray
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorOrange
	ColorBrown
	ColorWhite
	ColorRed
)

var paletteRGBA = map[Color]color.RGBA{
	ColorDefault:     {0xe0, 0xe0, 0xe0, 0xff},
	ColorGray:        {0x80, 0x80, 0x80, 0xff},
	ColorDarkGray:    {0x4a, 0x4a, 0x4a, 0xff},
	ColorGreen:       {0x2e, 0x8b, 0x3a, 0xff},
	ColorBrightGreen: {0x5c, 0xd6, 0x5c, 0xff},
	ColorYellow:      {0xf2, 0xc9, 0x4c, 0xff},
	ColorOrange:      {0xff, 0x87, 0x00, 0xff},
	ColorBrown:       {0x8b, 0x5a, 0x2b, 0xff},
	ColorWhite:       {0xff, 0xff, 0xff, 0xff},
	ColorRed:         {0xd7, 0x3a, 0x3a, 0xff},
}

// RGBA returns the color as an RGBA value. Unknown colors map to ColorDefault.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := paletteRGBA[c]; ok {
		return rgba
	}
	return paletteRGBA[ColorDefault]
}

// Hex returns the color as a CSS hex string, e.g. "#808080".
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
