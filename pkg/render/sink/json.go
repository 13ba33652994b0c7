package sink

import (
	"encoding/json"

	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
)

type jsonOutput struct {
	Name     string                `json:"name,omitempty"`
	Width    float64               `json:"width"`
	Height   float64               `json:"height"`
	Frame    geometry.Rect         `json:"frame"`
	Stats    diagram.Stats         `json:"stats"`
	Visuals  []diagram.Visual      `json:"visuals"`
	Segments []diagram.SegmentInfo `json:"segments"`
}

// RenderJSON exports the drawn visuals and the arranged segment stack.
func RenderJSON(d *diagram.Diagram) ([]byte, error) {
	size := d.Size()
	out := jsonOutput{
		Name:     d.Timetable().Name,
		Width:    size.W,
		Height:   size.H,
		Frame:    d.Frame(),
		Stats:    d.Stats(),
		Visuals:  []diagram.Visual{},
		Segments: d.Segments(),
	}
	for v := range d.Visuals() {
		out.Visuals = append(out.Visuals, v)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}
