package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/*.svg
var assets embed.FS

// sprite sizes in pixels; sprites are scaled to the entity box when drawn
const (
	rocketSpriteW = 40
	rocketSpriteH = 20
	targetSprite  = 64
)

// Atlas holds the rasterised SVG sprites. They are drawn white and tinted
// with the entity colour.
type Atlas struct {
	Rocket *ebiten.Image
	Target *ebiten.Image
}

// NewAtlas rasterises the embedded sprites. With ROCKETSIM_DEBUG_SPRITES=1
// the rasterised images are also written as PNG files to the working directory.
func NewAtlas(logger *slog.Logger) (*Atlas, error) {
	rocket, err := loadSprite("rocket.svg", rocketSpriteW, rocketSpriteH, logger)
	if err != nil {
		return nil, err
	}
	target, err := loadSprite("target.svg", targetSprite, targetSprite, logger)
	if err != nil {
		return nil, err
	}
	return &Atlas{
		Rocket: ebiten.NewImageFromImage(rocket),
		Target: ebiten.NewImageFromImage(target),
	}, nil
}

func loadSprite(name string, w, h int, logger *slog.Logger) (image.Image, error) {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("read sprite %s: %w", name, err)
	}
	img, err := Rasterize(data, w, h)
	if err != nil {
		return nil, fmt.Errorf("rasterise sprite %s: %w", name, err)
	}
	if os.Getenv("ROCKETSIM_DEBUG_SPRITES") == "1" {
		saveDebugPNG(img, "debug_"+name+".png", logger)
	}
	return img, nil
}

// Rasterize renders SVG data into a w x h RGBA image
func Rasterize(svg []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func saveDebugPNG(img image.Image, filename string, logger *slog.Logger) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Warn("create debug sprite", "file", filename, "error", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Warn("encode debug sprite", "file", filename, "error", err)
	}
}
