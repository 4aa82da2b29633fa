package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
)

// Nominal pixel size of a terminal cell. The simulation works in pixels;
// the terminal viewport is cols×CellWidth by rows×CellHeight.
const (
	CellWidth  = 10
	CellHeight = 20
)

// Visual characters for rendering
const (
	DinoBody     = '█'
	DinoHead     = '◆'
	DinoLeg1     = '╱'
	DinoLeg2     = '╲'
	CactusChar   = '▓'
	GroundChar   = '═'
	PebbleChar   = '·'
	pebbleSpread = 7 // Columns between pebbles on the ground texture
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBrown:       lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// CellRenderer draws the simulation into a character Screen. Pixel
// coordinates are shifted by the origin and mapped onto cells.
type CellRenderer struct {
	screen  *core.Screen
	originX float64 // Pixel offset of the play area inside the screen
	originY float64
	frame   int // Frame counter for the running animation
}

// NewCellRenderer creates a renderer drawing into screen.
func NewCellRenderer(screen *core.Screen) *CellRenderer {
	return &CellRenderer{screen: screen}
}

// SetOrigin places the play area's top-left corner, in pixels.
func (r *CellRenderer) SetOrigin(x, y float64) {
	r.originX = x
	r.originY = y
}

// Background clears the screen and advances the animation frame.
func (r *CellRenderer) Background() {
	r.screen.Clear()
	r.frame++
}

// Sprite draws a glyph pattern for the sprite kind inside dst.
func (r *CellRenderer) Sprite(kind runner.SpriteKind, _ string, dst core.RectF) {
	cells := dst.Translate(r.originX, r.originY).Cells(CellWidth, CellHeight)
	switch kind {
	case runner.SpriteGround:
		r.drawGround(cells, dst)
	case runner.SpriteObstacle:
		r.screen.FillRect(cells, CactusChar, core.ColorGreen)
	case runner.SpritePlayer:
		r.drawDino(cells, true)
	case runner.SpritePlayerJumping:
		r.drawDino(cells, false)
	}
}

// drawGround draws the ground line with pebbles that scroll with the tile.
func (r *CellRenderer) drawGround(cells core.Rect, dst core.RectF) {
	for x := cells.X; x < cells.Right(); x++ {
		r.screen.Set(x, cells.Y, GroundChar, core.ColorBrown)
		for y := cells.Y + 1; y < cells.Bottom(); y++ {
			local := int(math.Floor((float64(x)*CellWidth - r.originX - dst.X) / CellWidth))
			if (local+y)%pebbleSpread == 0 {
				r.screen.Set(x, y, PebbleChar, core.ColorDarkGray)
			}
		}
	}
}

// drawDino renders the player: a head row, a body and a leg row.
func (r *CellRenderer) drawDino(cells core.Rect, grounded bool) {
	if cells.W <= 0 || cells.H <= 0 {
		return
	}

	bodyRows := core.NewRect(cells.X, cells.Y, cells.W, cells.H-1)
	if cells.H == 1 {
		bodyRows = cells
	}
	r.screen.FillRect(bodyRows, DinoBody, core.ColorDarkGray)
	r.screen.Set(cells.Right()-1, cells.Y, DinoHead, core.ColorDarkGray)

	if cells.H == 1 {
		return
	}

	legY := cells.Bottom() - 1
	for x := cells.X; x < cells.Right(); x++ {
		r.screen.Set(x, legY, ' ', core.ColorDefault)
	}
	left, right := cells.X, cells.Right()-1
	switch {
	case !grounded:
		// In air - legs tucked
		r.screen.Set(left, legY, DinoLeg1, core.ColorDarkGray)
		r.screen.Set(left+1, legY, DinoLeg2, core.ColorDarkGray)
	case r.frame%10 < 5:
		r.screen.Set(left, legY, DinoLeg1, core.ColorDarkGray)
		r.screen.Set(right, legY, DinoLeg2, core.ColorDarkGray)
	default:
		r.screen.Set(left+1, legY, DinoLeg1, core.ColorDarkGray)
		r.screen.Set(right, legY, DinoLeg2, core.ColorDarkGray)
	}
}

// Text writes a string with its baseline at y. Terminal cells have one font
// size, so size only shifts the row to keep tall text vertically centred.
func (r *CellRenderer) Text(text string, x, y, size float64, c core.Color) {
	// Keep text on screen; a message wider than the screen starts at column 0
	lastCol := max(r.screen.Width()-len([]rune(text)), 0)
	col := core.ClampF(math.Floor((x+r.originX)/CellWidth), 0, float64(lastCol))
	row := max(math.Floor((y+r.originY-size/2)/CellHeight), 0)
	r.screen.DrawText(int(col), int(row), text, c)
}
