package canvas

import "fmt"

// Op is one recorded drawing call. The JSON form is what the HTTP API sends to
// browser clients, which replay it on a real 2D context.
type Op struct {
	Name  string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Text  string    `json:"text,omitempty"`
	Style string    `json:"style,omitempty"`
}

// String renders the op in a compact call form, e.g. fillText("Open", 10, 62).
func (o Op) String() string {
	switch {
	case o.Text != "":
		return fmt.Sprintf("%s(%q, %v)", o.Name, o.Text, o.Args)
	case o.Style != "":
		return fmt.Sprintf("%s(%s)", o.Name, o.Style)
	default:
		return fmt.Sprintf("%s(%v)", o.Name, o.Args)
	}
}

// Recorder is a Canvas that records every call instead of drawing.
type Recorder struct {
	ops      []Op
	measurer TextMeasurer
	depth    int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithMeasurer makes the recorder measure text with m instead of ApproxMeasurer.
func WithMeasurer(m TextMeasurer) RecorderOption {
	return func(r *Recorder) {
		r.measurer = m
	}
}

// NewRecorder creates an empty Recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		ops:      make([]Op, 0),
		measurer: NewApproxMeasurer(Font{Family: "sans-serif", Size: 10}),
		depth:    0,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Ops returns the recorded calls in order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)

	return out
}

// Depth is the number of Save calls not yet matched by Restore.
func (r *Recorder) Depth() int {
	return r.depth
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.depth = 0
}

func (r *Recorder) record(name string, args ...float64) {
	r.ops = append(r.ops, Op{Name: name, Args: args})
}

func (r *Recorder) Save() {
	r.depth++
	r.record("save")
}

func (r *Recorder) Restore() {
	if r.depth > 0 {
		r.depth--
	}

	r.record("restore")
}

func (r *Recorder) SetTransform(a, b, c, d, e, f float64) {
	r.record("setTransform", a, b, c, d, e, f)
}

func (r *Recorder) Scale(x, y float64) {
	r.record("scale", x, y)
}

func (r *Recorder) Translate(x, y float64) {
	r.record("translate", x, y)
}

func (r *Recorder) SetFillStyle(color string) {
	r.ops = append(r.ops, Op{Name: "fillStyle", Style: color})
}

func (r *Recorder) SetStrokeStyle(color string) {
	r.ops = append(r.ops, Op{Name: "strokeStyle", Style: color})
}

func (r *Recorder) SetTextAlign(align TextAlign) {
	r.ops = append(r.ops, Op{Name: "textAlign", Style: string(align)})
}

func (r *Recorder) SetFont(font Font) {
	r.measurer.SetFont(font)
	r.ops = append(r.ops, Op{Name: "font", Style: font.String()})
}

func (r *Recorder) BeginPath() {
	r.record("beginPath")
}

func (r *Recorder) Rect(x, y, width, height float64) {
	r.record("rect", x, y, width, height)
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("moveTo", x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("lineTo", x, y)
}

func (r *Recorder) Fill() {
	r.record("fill")
}

func (r *Recorder) Stroke() {
	r.record("stroke")
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.ops = append(r.ops, Op{Name: "fillText", Text: text, Args: []float64{x, y}})
}

// MeasureText is not recorded; it does not draw.
func (r *Recorder) MeasureText(text string) float64 {
	return r.measurer.MeasureText(text)
}
