package aggregate

import (
	"encoding/json"
	"math"
)

// seriesJSON is the wire form of Series. Mean and std points that are
// not finite (ratio gaps from zero denominators) are encoded as null,
// since JSON has no representation for NaN.
type seriesJSON struct {
	Axis []float64  `json:"axis"`
	Mean []*float64 `json:"mean"`
	Std  []*float64 `json:"std"`
	Runs int        `json:"runs"`
}

func (s *Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(seriesJSON{
		Axis: s.Axis,
		Mean: toNullable(s.Mean),
		Std:  toNullable(s.Std),
		Runs: s.Runs,
	})
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var wire seriesJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Axis = wire.Axis
	s.Mean = fromNullable(wire.Mean)
	s.Std = fromNullable(wire.Std)
	s.Runs = wire.Runs
	return nil
}

func toNullable(values []float64) []*float64 {
	if values == nil {
		return nil
	}
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		v := v
		out[i] = &v
	}
	return out
}

func fromNullable(values []*float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}
