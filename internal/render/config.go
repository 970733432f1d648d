package render

// Config holds the sizes and formats Compose needs beyond the layout.
type Config struct {
	// Decimals shown for prices and volumes on the axes and cursor labels.
	PriceDecimals  int32 `validate:"gte=0,lte=10"`
	VolumeDecimals int32 `validate:"gte=0,lte=10"`

	// Vertical offsets of trade labels from their marker anchor.
	LabelAbove float64
	LabelBelow float64
	// Labels projecting further than this outside clip space are dropped.
	LabelCull float32 `validate:"gt=0"`

	AxisXLabelBias float64
	AxisYLabelBias float64

	CursorLabelWidth  float64 `validate:"gt=0"`
	CursorLabelHeight float64 `validate:"gt=0"`
	AxisLabelHeight   float64 `validate:"gt=0"`

	LegendInsetX      float64
	LegendInsetY      float64
	LegendRowHeight   float64 `validate:"gt=0"`
	LegendColumnWidth float64 `validate:"gt=0"`

	DateLayout string `validate:"required"`
	TimeLayout string `validate:"required"`
}

// DefaultConfig returns pixel sizes for a desktop window.
func DefaultConfig() Config {
	return Config{
		PriceDecimals:     2,
		VolumeDecimals:    0,
		LabelAbove:        -24,
		LabelBelow:        6,
		LabelCull:         1.2,
		AxisXLabelBias:    30,
		AxisYLabelBias:    8,
		CursorLabelWidth:  80,
		CursorLabelHeight: 32,
		AxisLabelHeight:   16,
		LegendInsetX:      10,
		LegendInsetY:      10,
		LegendRowHeight:   20,
		LegendColumnWidth: 210,
		DateLayout:        "2006-01-02",
		TimeLayout:        "15:04",
	}
}
