package imagegen_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/imagegen"
	"github.com/swhawkins/LAPOK/internal/testhelpers"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// redLogo is an opaque red rectangle with the given size.
func redLogo(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}
	return img
}

// assertRed allows for rounding in the resampling filter.
func assertRed(t *testing.T, c color.Color) {
	t.Helper()
	got := rgba(c)
	assert.Greater(t, got.R, uint8(245), "red channel of %v", got)
	assert.Less(t, got.B, uint8(10), "blue channel of %v", got)
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)} //nolint:gosec,mnd // 16 to 8 bit
}

func TestTargets(t *testing.T) {
	icons := imagegen.AppIcons()
	names := make([]string, 0, len(icons))
	for _, icon := range icons {
		names = append(names, icon.Name)
		assert.Equal(t, icon.Width, icon.Height)
		assert.Equal(t, imagegen.Blue, icon.Background)
	}
	require.Equal(t, []string{"icon-152", "icon-167", "icon-180", "icon-192", "icon-512"}, names)

	splash := imagegen.SplashScreens()
	require.Len(t, splash, 28)
	require.Equal(t, "splash-2048x2732", splash[0].Name)
	require.Equal(t, imagegen.SplashLight, splash[0].Background)
	require.Equal(t, "splash-2048x2732-dark", splash[1].Name)
	require.Equal(t, imagegen.SplashDark, splash[1].Background)
	require.Equal(t, "splash-1440x2560-dark", splash[27].Name)
	seen := make(map[string]bool, len(splash))
	for _, s := range splash {
		require.False(t, seen[s.Name], "duplicate target %s", s.Name)
		seen[s.Name] = true
	}
	require.True(t, seen["splash-1179x2556"])

	apple := imagegen.AppleIcons()
	require.Len(t, apple, 3)
	require.Nil(t, apple[0].Background)
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name string
		size image.Point
		box  image.Point
		want image.Rectangle
	}{
		{name: "square in square", size: image.Pt(100, 100), box: image.Pt(70, 70), want: image.Rect(0, 0, 70, 70)},
		{name: "wide in square", size: image.Pt(200, 100), box: image.Pt(70, 70), want: image.Rect(0, 0, 70, 35)},
		{name: "square in tall", size: image.Pt(50, 50), box: image.Pt(192, 410), want: image.Rect(0, 0, 192, 192)},
		{name: "empty source", size: image.Pt(0, 10), box: image.Pt(10, 10), want: image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, imagegen.FitRect(tt.size, tt.box))
		})
	}
}

func TestRender(t *testing.T) {
	target := imagegen.Target{Name: "icon-100", Width: 100, Height: 100, Background: imagegen.Blue, LogoScale: 0.7}
	img := imagegen.Render(redLogo(10, 10), target)
	require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	// Logo box is 70x70 starting at 15,15.
	assert.Equal(t, imagegen.Blue, rgba(img.At(5, 5)))
	assert.Equal(t, imagegen.Blue, rgba(img.At(95, 50)))
	assertRed(t, img.At(50, 50))
	assertRed(t, img.At(20, 80))

	splash := imagegen.Target{Name: "s", Width: 100, Height: 200, Background: imagegen.SplashDark, LogoScale: 0.3}
	img = imagegen.Render(redLogo(10, 10), splash)
	// 30x30 logo centred at 35..65, 85..115.
	assert.Equal(t, imagegen.SplashDark, rgba(img.At(50, 80)))
	assertRed(t, img.At(50, 100))

	resized := imagegen.Render(redLogo(192, 192), imagegen.Target{Name: "a", Width: 180, Height: 180, Background: nil, LogoScale: 1})
	require.Equal(t, image.Rect(0, 0, 180, 180), resized.Bounds())
	assertRed(t, resized.At(0, 0))
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	targets := []imagegen.Target{
		{Name: "icon-16", Width: 16, Height: 16, Background: imagegen.Blue, LogoScale: 0.7},
		{Name: "splash-20x40-dark", Width: 20, Height: 40, Background: imagegen.SplashDark, LogoScale: 0.3},
	}
	err := imagegen.Generate(context.Background(), testhelpers.NewLogger(io.Discard), redLogo(8, 8), dir, targets)
	require.NoError(t, err)

	for _, target := range targets {
		f, err := os.Open(filepath.Join(dir, target.Name+".png"))
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		require.Equal(t, target.Width, cfg.Width)
		require.Equal(t, target.Height, cfg.Height)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = imagegen.Generate(ctx, testhelpers.NewLogger(io.Discard), redLogo(8, 8), dir, targets)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, redLogo(4, 3)))
	require.NoError(t, f.Close())

	img, err := imagegen.DecodePNG(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	_, err = imagegen.DecodePNG(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
