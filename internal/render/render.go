// Package render turns a hover request into an SVG document, a PNG image or
// a list of canvas commands. The CLI and the HTTP API share it.
package render

import (
	"bytes"
	"math"

	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/svg"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// Format is an output format of a hover request.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatPNG    Format = "png"
	FormatCanvas Format = "canvas"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG, FormatCanvas:
		return Format(s), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported format '%s', expected svg, png or canvas", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// Image is a rendered tooltip. Drawn is false when nothing is hovered; Body
// is empty then.
type Image struct {
	Drawn bool
	Body  []byte
}

// Commands is the canvas form of a rendered tooltip.
type Commands struct {
	Drawn bool        `json:"drawn"`
	Ops   []canvas.Op `json:"ops"`
}

// surfaceSize is the full surface including margins.
func surfaceSize(req *tooltip.HoverRequest) (float64, float64) {
	return req.Width + req.Margin.Left + req.Margin.Right, req.Height + req.Margin.Top + req.Margin.Bottom
}

// SVG renders the request as a standalone SVG document. Text is measured on
// a transient measurement surface.
func SVG(req *tooltip.HoverRequest) (Image, error) {
	if err := req.Validate(); err != nil {
		return Image{}, err
	}

	surface := &tooltip.SVGSurface{}

	drawn, err := tooltip.New(req.Props()).Handle(req.ToEvent(), surface)
	if err != nil || !drawn {
		return Image{Drawn: false}, err
	}

	root := svg.El("g", []svg.Attr{
		svg.A("transform", svg.Translate(req.Margin.Left, req.Margin.Top)),
	}, surface.Node.Unwrap())

	width, height := surfaceSize(req)

	var buf bytes.Buffer
	if err := svg.Render(&buf, root, width, height); err != nil {
		return Image{}, err
	}

	return Image{Drawn: true, Body: buf.Bytes()}, nil
}

// PNG renders the request on a raster surface scaled by the device pixel ratio.
func PNG(req *tooltip.HoverRequest) (Image, error) {
	if err := req.Validate(); err != nil {
		return Image{}, err
	}

	width, height := surfaceSize(req)
	ratio := req.Surface().Ratio
	if ratio <= 0 {
		ratio = 1
	}

	ctx, err := canvas.NewPNGCanvas(int(math.Ceil(width*ratio)), int(math.Ceil(height*ratio)))
	if err != nil {
		return Image{}, err
	}

	drawn, err := tooltip.New(req.Props()).Handle(req.ToEvent(), &tooltip.CanvasSurface{
		Canvas:         ctx,
		SurfaceContext: req.Surface(),
	})
	if err != nil || !drawn {
		return Image{Drawn: false}, err
	}

	var buf bytes.Buffer
	if err := ctx.Encode(&buf); err != nil {
		return Image{}, err
	}

	return Image{Drawn: true, Body: buf.Bytes()}, nil
}

// Canvas records the canvas commands that draw the request.
func Canvas(req *tooltip.HoverRequest) (Commands, error) {
	return NewCanvasRenderer().Render(req)
}

// CanvasRenderer records canvas commands for a sequence of requests on one
// recorder. It is not safe for concurrent use.
type CanvasRenderer struct {
	rec *canvas.Recorder
}

// NewCanvasRenderer creates a renderer whose text is measured on a
// measurement surface, so the box fits the replayed text. Without a usable
// font the recorder falls back to its approximate measurer.
func NewCanvasRenderer() *CanvasRenderer {
	opts := []canvas.RecorderOption{}
	if m, err := canvas.NewMeasurementSurface(); err == nil {
		opts = append(opts, canvas.WithMeasurer(m))
	}

	return &CanvasRenderer{rec: canvas.NewRecorder(opts...)}
}

// Render records the commands for one request. Commands of earlier requests
// are dropped first.
func (c *CanvasRenderer) Render(req *tooltip.HoverRequest) (Commands, error) {
	if err := req.Validate(); err != nil {
		return Commands{}, err
	}

	c.rec.Reset()

	drawn, err := tooltip.New(req.Props()).Handle(req.ToEvent(), &tooltip.CanvasSurface{
		Canvas:         c.rec,
		SurfaceContext: req.Surface(),
	})
	if err != nil {
		return Commands{}, err
	}

	return Commands{Drawn: drawn, Ops: c.rec.Ops()}, nil
}
