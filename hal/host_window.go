//go:build !tinygo && cgo

package hal

import (
	"image"
	"time"

	"watchface/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer. It blocks
// until the window closes. Once App.Step fails the window stays open on the
// app's last frame, and the error is returned when the window closes.
func RunWindow(cfg HostConfig, newApp func(HAL) App) error {
	cfg = cfg.withDefaults()
	h := New(cfg).(*hostHAL)
	defer closeBattery(h.bat)
	app := newApp(h)

	g := &hostGame{h: h, app: stepper{app: app}}
	ebiten.SetWindowTitle("Watchface (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(30)
	runErr := ebiten.RunGame(g)
	if runErr == nil {
		runErr = g.app.err
	}
	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	app     stepper
}

func (g *hostGame) Update() error {
	if g.app.failed() {
		return nil
	}
	g.h.t.advance(time.Now())
	g.app.step()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
