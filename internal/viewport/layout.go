package viewport

import "github.com/zappabad/klinechart/internal/transform"

// LayoutConfig sizes the chart areas. Units are whatever the host surface
// uses (pixels for a window, cells for a terminal).
type LayoutConfig struct {
	Margin      float64 `validate:"gte=0"`
	AxisXHeight float64 `validate:"gte=0"`
	AxisYWidth  float64 `validate:"gte=0"`
	HintHeight  float64 `validate:"gte=0"`
	PriceShare  float64 `validate:"gt=0,lt=1"`
	InfoWidth   float64 `validate:"gt=0"`
	InfoHeight  float64 `validate:"gt=0"`
	// Distance between neighbouring axis labels.
	PriceLabelSpacing    float64 `validate:"gt=0"`
	DatetimeLabelSpacing float64 `validate:"gt=0"`
	// Trade volume labels are hidden when more than this many bars share one
	// unit of chart width.
	LabelDensity float64 `validate:"gt=0"`
}

// DefaultLayoutConfig returns a pixel layout for a desktop window.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Margin:               5,
		AxisXHeight:          32,
		AxisYWidth:           80,
		HintHeight:           80,
		PriceShare:           0.7,
		InfoWidth:            80,
		InfoHeight:           320,
		PriceLabelSpacing:    30,
		DatetimeLabelSpacing: 300,
		LabelDensity:         5,
	}
}

// Layout is the set of screen rectangles for one surface size.
type Layout struct {
	Config LayoutConfig
	Screen transform.Rect
	Frame  transform.Rect
	Price  transform.Rect
	Volume transform.Rect
}

// NewLayout splits a width×height surface into the frame, price and volume
// areas. The volume area sits directly below the price area.
func NewLayout(cfg LayoutConfig, width, height float64) Layout {
	width = max(width, 1)
	height = max(height, 1)

	frame := transform.Rect{
		X:      cfg.Margin,
		Y:      cfg.Margin,
		Width:  max(0, width-2*cfg.Margin),
		Height: max(0, height-2*cfg.Margin-cfg.HintHeight),
	}
	plotWidth := max(0, frame.Width-cfg.AxisYWidth)
	plotHeight := max(0, frame.Height-cfg.AxisXHeight)

	price := transform.Rect{
		X:      cfg.Margin,
		Y:      cfg.Margin,
		Width:  plotWidth,
		Height: plotHeight * cfg.PriceShare,
	}
	volume := transform.Rect{
		X:      cfg.Margin,
		Y:      cfg.Margin + price.Height,
		Width:  plotWidth,
		Height: plotHeight * (1 - cfg.PriceShare),
	}
	return Layout{
		Config: cfg,
		Screen: transform.Rect{Width: width, Height: height},
		Frame:  frame,
		Price:  price,
		Volume: volume,
	}
}

// Plot is the combined price and volume area the cursor reacts to.
func (l Layout) Plot() transform.Rect {
	return transform.Rect{
		X:      l.Price.X,
		Y:      l.Price.Y,
		Width:  l.Price.Width,
		Height: l.Volume.Bottom() - l.Price.Y,
	}
}

// InfoBox returns the info panel rectangle for the given docking side.
func (l Layout) InfoBox(dockLeft bool) transform.Rect {
	x := l.Price.X
	if !dockLeft {
		x = l.Price.Right() - l.Config.InfoWidth
	}
	return transform.Rect{X: x, Y: l.Price.Y, Width: l.Config.InfoWidth, Height: l.Config.InfoHeight}
}
