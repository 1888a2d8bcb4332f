package render

import "strings"

// Layer identifies one toggleable group of chart series.
type Layer string

const (
	LayerCandles        Layer = "candles"
	LayerMovingAverages Layer = "moving_averages"
	LayerBollinger      Layer = "bollinger"
	LayerSignals        Layer = "signals"
	LayerProjection     Layer = "projection"
)

// AllLayers lists every known layer in display order.
func AllLayers() []Layer {
	return []Layer{LayerCandles, LayerMovingAverages, LayerBollinger, LayerSignals, LayerProjection}
}

// LayerSet is the subset of layers a chart request wants drawn.
type LayerSet map[Layer]bool

func (s LayerSet) Has(l Layer) bool { return s[l] }

// DefaultLayers returns what a request without an explicit selection
// gets: everything except the bollinger bands.
func DefaultLayers() LayerSet {
	return LayerSet{
		LayerCandles:        true,
		LayerMovingAverages: true,
		LayerSignals:        true,
		LayerProjection:     true,
	}
}

// ParseLayers builds a set from raw query values. Values may be
// repeated or comma separated. Unknown names are dropped, so an
// explicit empty selection yields an empty set, not the default.
func ParseLayers(values []string) LayerSet {
	set := LayerSet{}
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			switch l := Layer(strings.TrimSpace(part)); l {
			case LayerCandles, LayerMovingAverages, LayerBollinger, LayerSignals, LayerProjection:
				set[l] = true
			}
		}
	}
	return set
}
