package sink

import (
	"encoding/json"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/session"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact   bool
	sessionID string
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONSession records the id of the session that produced the frame.
func WithJSONSession(id string) JSONOption { return func(r *jsonRenderer) { r.sessionID = id } }

type jsonOutput struct {
	Session string      `json:"session,omitempty"`
	Seq     uint64      `json:"seq"`
	Theme   string      `json:"theme"`
	Axis    string      `json:"axis"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Blocks  []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Value  float64 `json:"value"`
	Size   float64 `json:"size"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  string  `json:"style"`
}

// RenderJSON exports the frame as a JSON document with one entry per block
// in frame order. Unlike the vector sinks it keeps zero-area blocks and
// passes styles through verbatim.
func RenderJSON(f *session.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if f == nil {
		return nil, errNoFrame()
	}

	out := jsonOutput{
		Session: r.sessionID,
		Seq:     f.Seq,
		Theme:   f.Theme,
		Axis:    f.Axis.String(),
		Width:   f.Canvas.Width,
		Height:  f.Canvas.Height,
		Blocks:  make([]jsonBlock, len(f.Blocks)),
	}
	for i, b := range f.Blocks {
		out.Blocks[i] = jsonBlock{
			Index:  i,
			Name:   b.Name,
			Role:   b.Role.String(),
			Value:  b.Value,
			Size:   b.Size,
			X:      b.Pos.X,
			Y:      b.Pos.Y,
			Width:  b.Width,
			Height: b.Height,
			Style:  string(b.Style),
		}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func errNoFrame() error {
	return errors.New(errors.ErrCodeInvalidInput, "no frame to render")
}
