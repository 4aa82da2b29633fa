package desktop

import (
	"image/color"
	_ "image/png" // Sprite images are PNG
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
)

// Debug font glyph metrics used to place text by its baseline.
const (
	debugCharWidth  = 6
	debugCharHeight = 13
)

var (
	backgroundColor = color.RGBA{0xf7, 0xf7, 0xf7, 0xff}

	// Placeholder fills for sprites whose image is missing.
	spriteFills = map[runner.SpriteKind]color.Color{
		runner.SpriteGround:        core.ColorBrown.RGBA(),
		runner.SpriteObstacle:      core.ColorGreen.RGBA(),
		runner.SpritePlayer:        core.ColorDarkGray.RGBA(),
		runner.SpritePlayerJumping: core.ColorDarkGray.RGBA(),
	}
)

// ImageRenderer draws the simulation onto an ebiten image. Sprite images are
// loaded lazily from the assets directory; anything that fails to load is
// drawn as a filled rectangle.
type ImageRenderer struct {
	dst       *ebiten.Image
	assetsDir string
	images    map[string]*ebiten.Image // nil entry: load failed
	logger    *log.Logger
}

// NewImageRenderer creates a renderer reading sprites from assetsDir.
func NewImageRenderer(assetsDir string, logger *log.Logger) *ImageRenderer {
	return &ImageRenderer{
		assetsDir: assetsDir,
		images:    make(map[string]*ebiten.Image),
		logger:    logger,
	}
}

// SetTarget sets the image drawn into by subsequent calls.
func (r *ImageRenderer) SetTarget(dst *ebiten.Image) {
	r.dst = dst
}

// Background clears the target.
func (r *ImageRenderer) Background() {
	r.dst.Fill(backgroundColor)
}

// Sprite draws image stretched over dst, or a placeholder rectangle.
func (r *ImageRenderer) Sprite(kind runner.SpriteKind, image string, dst core.RectF) {
	img := r.image(image)
	if img == nil {
		vector.FillRect(r.dst, float32(dst.X), float32(dst.Y), float32(dst.W), float32(dst.H), spriteFills[kind], false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	r.dst.DrawImage(img, op)
}

// Text prints with the debug font, scaled to size and tinted with c. The
// glyphs are rendered white into a scratch image first.
func (r *ImageRenderer) Text(text string, x, y, size float64, c core.Color) {
	if text == "" {
		return
	}
	scratch := ebiten.NewImage(len([]rune(text))*debugCharWidth, debugCharHeight+3)
	defer scratch.Deallocate()
	ebitenutil.DebugPrint(scratch, text)

	k := size / debugCharHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(x, y-size) // y is the baseline
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.Filter = ebiten.FilterLinear
	r.dst.DrawImage(scratch, op)
}

func (r *ImageRenderer) image(name string) *ebiten.Image {
	if name == "" || r.assetsDir == "" {
		return nil
	}
	if img, ok := r.images[name]; ok {
		return img
	}

	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(r.assetsDir, name))
	if err != nil {
		r.logger.Debug("sprite image unavailable", "image", name, "error", err)
		img = nil
	}
	r.images[name] = img
	return img
}
