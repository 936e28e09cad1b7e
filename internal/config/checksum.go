package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
)

type checksumModelEntry struct {
	Key        string   `json:"key"`
	Index      int      `json:"index"`
	Dir        string   `json:"dir"`
	Pattern    string   `json:"pattern"`
	Start      int      `json:"start"`
	Count      int      `json:"count"`
	Format     string   `json:"format"`
	TimeColumn string   `json:"time_column"`
	TimeUnit   string   `json:"time_unit"`
	Columns    []string `json:"columns,omitempty"`
	SkipRows   int      `json:"skip_rows,omitempty"`
}

type checksumPayload struct {
	Name         string               `json:"name"`
	Days         float64              `json:"days"`
	SDMultiplier float64              `json:"sd_multiplier"`
	AxisMode     string               `json:"axis_mode"`
	GridPoints   int                  `json:"grid_points,omitempty"`
	Fields       []string             `json:"fields"`
	Ratios       []RatioConfig        `json:"ratios,omitempty"`
	Models       []checksumModelEntry `json:"models"`
}

// Checksum returns a short, stable checksum identifying the effective
// comparison (inputs, time bound and requested aggregates), independent of
// output paths and log settings. Two runs with the same checksum operated on
// the same data the same way.
//
// It computes MD5 over a canonical JSON representation and returns the first
// 6 hex characters.
func Checksum(cfg *ComparisonConfig) (string, error) {
	if cfg == nil {
		return "", nil
	}

	entries := make([]checksumModelEntry, 0, len(cfg.Models))
	for key, m := range cfg.Models {
		entries = append(entries, checksumModelEntry{
			Key:        key,
			Index:      m.Index,
			Dir:        m.Dir,
			Pattern:    m.Pattern,
			Start:      m.Start,
			Count:      m.Count,
			Format:     m.Format,
			TimeColumn: m.TimeColumn,
			TimeUnit:   m.TimeUnit,
			Columns:    m.Columns,
			SkipRows:   m.SkipRows,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Index != entries[j].Index {
			return entries[i].Index < entries[j].Index
		}
		return entries[i].Key < entries[j].Key
	})

	payload := checksumPayload{
		Name:         cfg.Comparison.Name,
		Days:         cfg.Comparison.Days,
		SDMultiplier: cfg.Comparison.SDMultiplier,
		AxisMode:     cfg.Comparison.Axis.Mode,
		GridPoints:   cfg.Comparison.Axis.GridPoints,
		Fields:       cfg.Comparison.Fields,
		Ratios:       cfg.Comparison.Ratios,
		Models:       entries,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := md5.Sum(b)
	hexStr := hex.EncodeToString(sum[:])
	if len(hexStr) > 6 {
		hexStr = hexStr[:6]
	}
	return hexStr, nil
}
