package run

import "fmt"

// Run holds one simulation replicate's recorded time series: a non-decreasing
// time sequence plus one or more equally long named value columns. A Run is
// immutable after construction.
type Run struct {
	source string
	times  []float64
	fields map[string][]float64
}

// New validates and constructs a Run. Every field column must have the same
// length as the time column, and times must be non-decreasing.
func New(source string, times []float64, fields map[string][]float64) (*Run, error) {
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, &MalformedSeriesError{
				Source: source,
				Reason: fmt.Sprintf("time decreases at sample %d (%g -> %g)", i, times[i-1], times[i]),
			}
		}
	}

	for name, values := range fields {
		if len(values) != len(times) {
			return nil, &MalformedSeriesError{
				Source: source,
				Reason: fmt.Sprintf("field %s has %d samples, expected %d", name, len(values), len(times)),
			}
		}
	}

	return &Run{source: source, times: times, fields: fields}, nil
}

func (r *Run) Source() string {
	return r.source
}

func (r *Run) Len() int {
	return len(r.times)
}

// Times returns the run's time sequence. The returned slice must not be
// modified.
func (r *Run) Times() []float64 {
	return r.times
}

func (r *Run) HasField(name string) bool {
	_, ok := r.fields[name]
	return ok
}

func (r *Run) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	return names
}

// Field returns the value column for name. The returned slice must not be
// modified.
func (r *Run) Field(name string) ([]float64, error) {
	values, ok := r.fields[name]
	if !ok {
		return nil, &MalformedSeriesError{
			Source: r.source,
			Reason: fmt.Sprintf("field %s is absent", name),
		}
	}
	return values, nil
}

// Truncate returns a new Run containing the samples with time <= maxTime.
// Sample order is preserved; no resampling happens. The result may be empty.
func (r *Run) Truncate(maxTime float64) *Run {
	n := len(r.times)
	for n > 0 && r.times[n-1] > maxTime {
		n--
	}

	fields := make(map[string][]float64, len(r.fields))
	for name, values := range r.fields {
		fields[name] = values[:n]
	}

	return &Run{source: r.source, times: r.times[:n], fields: fields}
}

// Set is an ordered collection of runs treated as repeated trials of one
// experimental condition.
type Set struct {
	Runs []*Run
}

func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Runs)
}

// Truncate applies Run.Truncate to every run in the set.
func (s *Set) Truncate(maxTime float64) *Set {
	truncated := &Set{Runs: make([]*Run, 0, len(s.Runs))}
	for _, r := range s.Runs {
		truncated.Runs = append(truncated.Runs, r.Truncate(maxTime))
	}
	return truncated
}
