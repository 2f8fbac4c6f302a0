// Package vegalite holds the subset of the Vega-Lite v5 grammar the dashboard
// charts are described with. Specs marshal to JSON a browser renders with
// vega-embed.
package vegalite

import "encoding/json"

const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// Field types.
const (
	Quantitative = "quantitative"
	Nominal      = "nominal"
	Temporal     = "temporal"
	Ordinal      = "ordinal"
)

// NoLegend hides a channel's legend.
var NoLegend = json.RawMessage("null")

type Spec struct {
	Schema   string      `json:"$schema,omitempty"`
	Title    string      `json:"title,omitempty"`
	Width    interface{} `json:"width,omitempty"`
	Height   interface{} `json:"height,omitempty"`
	Data     *Data       `json:"data,omitempty"`
	Params   []Param     `json:"params,omitempty"`
	Mark     *Mark       `json:"mark,omitempty"`
	Encoding *Encoding   `json:"encoding,omitempty"`
	Layer    []Spec      `json:"layer,omitempty"`
}

type Data struct {
	Values interface{} `json:"values"`
}

type Mark struct {
	Type     string  `json:"type"`
	Size     float64 `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
	Align    string  `json:"align,omitempty"`
	Baseline string  `json:"baseline,omitempty"`
	Dx       float64 `json:"dx,omitempty"`
	Filled   bool    `json:"filled,omitempty"`
}

type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Opacity *Channel  `json:"opacity,omitempty"`
	Text    *Channel  `json:"text,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

type Channel struct {
	Field     string      `json:"field,omitempty"`
	Type      string      `json:"type,omitempty"`
	Title     string      `json:"title,omitempty"`
	Format    string      `json:"format,omitempty"`
	Sort      interface{} `json:"sort,omitempty"`
	Scale     *Scale      `json:"scale,omitempty"`
	Axis      *Axis       `json:"axis,omitempty"`
	Legend    interface{} `json:"legend,omitempty"`
	Stack     interface{} `json:"stack,omitempty"`
	Condition *Condition  `json:"condition,omitempty"`
	Value     interface{} `json:"value,omitempty"`
}

type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Zero   *bool     `json:"zero,omitempty"`
}

type Axis struct {
	Values []float64 `json:"values,omitempty"`
	Format string    `json:"format,omitempty"`
}

// Param declares a selection; Bind "legend" lets the legend drive it.
type Param struct {
	Name   string     `json:"name"`
	Select *Selection `json:"select,omitempty"`
	Bind   string     `json:"bind,omitempty"`
}

type Selection struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields,omitempty"`
}

type Condition struct {
	Param string      `json:"param"`
	Value interface{} `json:"value"`
}

// New starts a top-level spec carrying the schema URL.
func New(title string, values interface{}) *Spec {
	return &Spec{
		Schema: Schema,
		Title:  title,
		Width:  "container",
		Data:   &Data{Values: values},
	}
}
