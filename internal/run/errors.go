package run

import (
	"errors"
	"fmt"
)

// ErrEmptyRunSet is returned when an aggregation is requested over a run set
// that contains no runs.
var ErrEmptyRunSet = errors.New("run set contains no runs")

// DataUnavailableError indicates that a named input source does not exist.
// Callers are expected to warn and continue with a reduced run set.
type DataUnavailableError struct {
	Path string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data source %s does not exist", e.Path)
}

// MalformedSeriesError indicates that a run's data cannot be used: the time
// sequence decreases, a requested field is absent, or a value cannot be
// parsed. The caller decides whether to exclude the run or abort.
type MalformedSeriesError struct {
	Source string
	Reason string
}

func (e *MalformedSeriesError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed series: %s", e.Reason)
	}
	return fmt.Sprintf("malformed series in %s: %s", e.Source, e.Reason)
}
