package layout

import "github.com/odvcencio/slate/pkg/metric"

// SplitterSize is the thickness of a splitter band in logical units.
const SplitterSize = 6

// Track defaults applied to every track a layout is created with.
const (
	defaultFillWeight = 1
	defaultMinPixels  = 20
)

// Unit is the sizing policy of a track dimension.
type Unit int

const (
	// UnitPixels is a fixed size in logical units.
	UnitPixels Unit = iota
	// UnitPercent is a fraction of the total axis size.
	UnitPercent
	// UnitFill shares leftover space proportionally by weight.
	UnitFill
	// UnitMetric resolves a platform metric.
	UnitMetric
)

// TrackSize is one sizing policy: a unit plus its value.
type TrackSize struct {
	Unit   Unit
	Value  float64
	Metric metric.Metric
}

// Fixed returns a pixel policy in logical units.
func Fixed(px float64) TrackSize {
	return TrackSize{Unit: UnitPixels, Value: px}
}

// Percentage returns a percent-of-axis policy. 100 is the full axis.
func Percentage(pct float64) TrackSize {
	return TrackSize{Unit: UnitPercent, Value: pct}
}

// Fill returns a fill policy with the given weight.
func Fill(weight float64) TrackSize {
	return TrackSize{Unit: UnitFill, Value: weight}
}

// FromMetric returns a policy sized by a platform metric.
func FromMetric(m metric.Metric) TrackSize {
	return TrackSize{Unit: UnitMetric, Metric: m}
}

// resolveMin converts a minimum policy to device pixels. Percent minimums
// resolve against the total axis size; everything else is treated as
// logical pixels (metric minimums resolve through the scaler).
func (s TrackSize) resolveMin(total int, sc metric.Scaler) int {
	switch s.Unit {
	case UnitPercent:
		return int(float64(total) * s.Value / 100)
	case UnitMetric:
		return sc.Resolve(s.Metric)
	default:
		return sc.Px(s.Value)
	}
}

// Track is one row or column of a layout.
type Track struct {
	Policy   TrackSize
	Min      TrackSize
	Splitter bool

	collapsed   bool
	savedPolicy TrackSize

	// Solved by Arrange, in device pixels.
	pos  int
	size int
}

// Pos returns the track's solved start position in device pixels.
func (t *Track) Pos() int { return t.pos }

// Size returns the track's solved extent in device pixels.
func (t *Track) Size() int { return t.size }

// Collapsed reports whether the track is collapsed.
func (t *Track) Collapsed() bool { return t.collapsed }

func defaultTrack() Track {
	return Track{
		Policy: Fill(defaultFillWeight),
		Min:    Fixed(defaultMinPixels),
	}
}
