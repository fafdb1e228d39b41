package capture

import (
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"

	"github.com/vova616/screenshot"

	"github.com/lyind/loopgrab/domain/game"
	"github.com/lyind/loopgrab/domain/geom"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabSelection returns a capture of the given screen region.
func GrabSelection(selection image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(selection)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ScreenFrame is the production frame source backed by X11 screen capture.
// It is not safe for concurrent use; the polling loop owns it.
type ScreenFrame struct {
	logger *slog.Logger
	width  int
	height int
	img    *image.RGBA
	region image.Rectangle
}

// NewScreenFrame probes the display and returns a frame source covering it.
// An initial capture is taken so PixelAt is defined before the first Next.
func NewScreenFrame(logger *slog.Logger) (*ScreenFrame, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	img, err := Grab()
	if err != nil {
		return nil, err
	}
	return &ScreenFrame{logger: logger, width: r.Dx(), height: r.Dy(), img: img}, nil
}

// Size returns the display dimensions in pixels.
func (s *ScreenFrame) Size() (int, int) { return s.width, s.height }

// RestrictTo narrows subsequent captures to the given screen region. Reads
// outside the region keep returning the pixel data captured before the
// restriction took effect.
func (s *ScreenFrame) RestrictTo(r geom.Rect) {
	s.region = image.Rect(r.X0, r.Y0, r.X1, r.Y1).Intersect(image.Rect(0, 0, s.width, s.height))
}

// Next captures a fresh snapshot, replacing all prior pixel data. Once a
// region is set only that region is grabbed and composited in place. Capture
// failures keep the previous snapshot and are logged.
func (s *ScreenFrame) Next() {
	if !s.region.Empty() {
		img, err := GrabSelection(s.region)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("capture region", "region", s.region.String(), "error", err)
			}
			return
		}
		draw.Draw(s.img, s.region, img, img.Bounds().Min, draw.Src)
		return
	}
	img, err := Grab()
	if err != nil {
		if s.logger != nil {
			s.logger.Error("capture full", "error", err)
		}
		return
	}
	s.img = img
}

// PixelAt returns the color at (x, y) of the current snapshot. The alpha
// channel is reported as zero so values compare against the reference
// constants directly. Coordinates outside the frame are undefined.
func (s *ScreenFrame) PixelAt(x, y int) geom.Color {
	i := s.img.PixOffset(x, y)
	return geom.NewColor(s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], 0)
}

// SaveSnapshot writes the current snapshot as PNG to path. Best-effort:
// failures are logged, not propagated.
func (s *ScreenFrame) SaveSnapshot(path string) {
	if s.img == nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("snapshot create", "path", path, "error", err)
		}
		return
	}
	defer f.Close()
	if err := png.Encode(f, s.img); err != nil && s.logger != nil {
		s.logger.Error("snapshot encode", "path", path, "error", err)
	}
}

var _ game.RegionFrame = (*ScreenFrame)(nil)
