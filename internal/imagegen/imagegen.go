// Package imagegen renders the icons and splash screens of the installable web app from a PNG logo.
package imagegen

import (
	"context"
	"github.com/swhawkins/LAPOK/internal/errors"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

var (
	// Blue is the blue-600 background of the app icons.
	Blue = color.RGBA{R: 37, G: 99, B: 235, A: 255} //nolint:mnd // brand colour
	// SplashLight is the background of the light splash screens.
	SplashLight = color.RGBA{R: 255, G: 255, B: 255, A: 255} //nolint:mnd // brand colour
	// SplashDark is the gray-800 background of the dark splash screens.
	SplashDark = color.RGBA{R: 31, G: 41, B: 55, A: 255} //nolint:mnd // brand colour
)

const (
	appIconLogoScale = 0.7
	splashLogoScale  = 0.3
)

// Target is one image to render.
type Target struct {
	// Name is the file name without extension.
	Name          string
	Width, Height int
	// Background fills the canvas. Nil means the source is scaled to cover the whole canvas.
	Background color.Color
	// LogoScale is the size of the box the logo is fitted into, relative to the canvas.
	LogoScale float64
}

// AppIcons are the square home screen icons with the logo on blue.
func AppIcons() []Target {
	sizes := []int{152, 167, 180, 192, 512} //nolint:mnd // device icon sizes
	targets := make([]Target, 0, len(sizes))
	for _, size := range sizes {
		targets = append(targets, Target{
			Name:       "icon-" + strconv.Itoa(size),
			Width:      size,
			Height:     size,
			Background: Blue,
			LogoScale:  appIconLogoScale,
		})
	}
	return targets
}

// SplashScreens are the launch images for iOS and Android devices, one light and one dark per size.
func SplashScreens() []Target {
	sizes := [][2]int{
		{2048, 2732}, // iPad Pro 12.9"
		{1668, 2388}, // iPad Pro 11"
		{1536, 2048}, // iPad Air, iPad Mini
		{1284, 2778}, // iPhone 13 Pro Max, 14 Plus, 15 Plus
		{1179, 2556}, // iPhone 14 Pro, 15, 15 Pro
		{1170, 2532}, // iPhone 12, 13, 13 Pro
		{1125, 2436}, // iPhone X/XS/11 Pro
		{1242, 2688}, // iPhone XS Max/11 Pro Max/12 Pro Max
		{828, 1792},  // iPhone XR/11
		{1242, 2208}, // iPhone 8 Plus
		{750, 1334},  // iPhone 8
		{640, 1136},  // iPhone SE
		{1080, 1920}, // Android
		{1440, 2560}, // Android
	}
	targets := make([]Target, 0, 2*len(sizes)) //nolint:mnd // light and dark
	for _, s := range sizes {
		name := "splash-" + strconv.Itoa(s[0]) + "x" + strconv.Itoa(s[1])
		targets = append(targets,
			Target{Name: name, Width: s[0], Height: s[1], Background: SplashLight, LogoScale: splashLogoScale},
			Target{Name: name + "-dark", Width: s[0], Height: s[1], Background: SplashDark, LogoScale: splashLogoScale},
		)
	}
	return targets
}

// AppleIcons are the touch icon sizes resized from an existing app icon.
func AppleIcons() []Target {
	sizes := []int{180, 152, 167} //nolint:mnd // apple touch icon sizes
	targets := make([]Target, 0, len(sizes))
	for _, size := range sizes {
		targets = append(targets, Target{
			Name:       "icon-" + strconv.Itoa(size),
			Width:      size,
			Height:     size,
			Background: nil,
			LogoScale:  1,
		})
	}
	return targets
}

// Render draws src onto a new canvas as described by t.
func Render(src image.Image, t Target) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	if t.Background == nil {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(t.Background), image.Point{}, draw.Src)
	box := image.Pt(round(float64(t.Width)*t.LogoScale), round(float64(t.Height)*t.LogoScale))
	logo := FitRect(src.Bounds().Size(), box)
	// Centre the logo on the canvas.
	offset := image.Pt((t.Width-logo.Dx())/2, (t.Height-logo.Dy())/2) //nolint:mnd // halves
	draw.CatmullRom.Scale(dst, logo.Add(offset), src, src.Bounds(), draw.Over, nil)
	return dst
}

// FitRect returns the largest rectangle at the origin with the aspect ratio of size that fits inside box.
func FitRect(size, box image.Point) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || box.X <= 0 || box.Y <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(box.X)/float64(size.X), float64(box.Y)/float64(size.Y))
	w := min(box.X, max(1, round(float64(size.X)*scale)))
	h := min(box.Y, max(1, round(float64(size.Y)*scale)))
	return image.Rect(0, 0, w, h)
}

// DecodePNG reads a PNG image from path.
func DecodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image", slog.String("path", path))
	}
	defer f.Close() //nolint:errcheck // read only
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode png", slog.String("path", path))
	}
	return img, nil
}

// Generate renders all targets from src in parallel and writes them as PNG files into outDir. It stops at the
// first failure.
func Generate(ctx context.Context, logger *slog.Logger, src image.Image, outDir string, targets []Target) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil { //nolint:mnd // directory permissions
		return errors.Wrap(err, "create output directory", slog.String("dir", outDir))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "cancelled", slog.String("name", t.Name))
			}
			path := filepath.Join(outDir, t.Name+".png")
			if err := writePNG(path, Render(src, t)); err != nil {
				return errors.Wrap(err, "write target", slog.String("name", t.Name))
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "generated image", slog.String("path", path),
				slog.Int("width", t.Width), slog.Int("height", t.Height))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "generate images")
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create file")
	}
	if err = png.Encode(f, img); err != nil {
		return errors.Join(errors.Wrap(err, "encode png"), f.Close())
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "close file")
	}
	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}
