package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// A4 content area in millimeters. Pages are cut into pageHeightMM bands of
// the captured raster.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 295.0
)

// Capturer rasterizes a rendered HTML page into a PNG image.
type Capturer interface {
	CapturePNG(ctx context.Context, html string) ([]byte, error)
}

// ExportError is the single user-visible failure of the export pipeline.
type ExportError struct {
	Message string
	Err     error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExportError) Unwrap() error { return e.Err }

// ExportResult carries the finished PDF and its download name.
type ExportResult struct {
	FileName string
	PDF      []byte
}

// Exporter turns a builder's current document into a paginated A4 PDF.
type Exporter struct {
	capturer Capturer
	attempts int
	backoff  time.Duration
}

func NewExporter(c Capturer) *Exporter {
	return &Exporter{capturer: c, attempts: 3, backoff: time.Second}
}

// Export renders a snapshot of the builder's document, captures it under a
// forced light theme, and paginates the raster into A4 pages. The session
// theme is restored on every exit path, and edits made while the capture is
// in flight do not affect the output. An empty fileName defaults to
// "resume".
func (e *Exporter) Export(ctx context.Context, b *Builder, fileName string) (*ExportResult, error) {
	if fileName == "" {
		fileName = "resume"
	}
	doc := b.Document()

	restore := b.forceTheme(ThemeLight)
	defer restore()

	html, err := LayoutHTML(Render(doc), ThemeLight)
	if err != nil {
		return nil, &ExportError{Message: "Failed to generate PDF. Please try again.", Err: err}
	}

	img, err := e.capture(ctx, html)
	if err != nil {
		return nil, &ExportError{Message: "Failed to generate PDF. Please try again.", Err: err}
	}

	pdf, err := paginate(img)
	if err != nil {
		return nil, &ExportError{Message: "Failed to generate PDF. Please try again.", Err: err}
	}

	return &ExportResult{FileName: fileName + ".pdf", PDF: pdf}, nil
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// capture retries the raster capture with backoff, mirroring the render
// retry loop used for server-side generation.
func (e *Exporter) capture(ctx context.Context, html string) ([]byte, error) {
	var img []byte
	var err error
	for i := 0; i < e.attempts; i++ {
		img, err = e.capturer.CapturePNG(ctx, html)
		if err == nil {
			if bytes.HasPrefix(img, pngMagic) {
				return img, nil
			}
			err = fmt.Errorf("invalid capture output (len=%d)", len(img))
		}
		slog.Warn("capture attempt failed", "attempt", i+1, "error", err)
		if i < e.attempts-1 {
			backoff := time.Duration(1<<i) * e.backoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, err
}

// paginate lays the captured image across as many A4 pages as its height
// requires: full page width, aspect ratio preserved, each page showing the
// next pageHeightMM band.
func paginate(img []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("capture has degenerate size %dx%d", cfg.Width, cfg.Height)
	}
	imgHeightMM := float64(cfg.Height) * pageWidthMM / float64(cfg.Width)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("resume", opt, bytes.NewReader(img))
	for _, y := range pageOffsets(imgHeightMM) {
		pdf.AddPage()
		pdf.ImageOptions("resume", 0, y, pageWidthMM, imgHeightMM, false, opt, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageOffsets returns the image Y offset for each page. An image exactly
// k pages tall yields exactly k offsets; there is no blank trailing page.
func pageOffsets(imgHeightMM float64) []float64 {
	offsets := []float64{0}
	heightLeft := imgHeightMM - pageHeightMM
	for heightLeft > 0 {
		offsets = append(offsets, heightLeft-imgHeightMM)
		heightLeft -= pageHeightMM
	}
	return offsets
}
