package levels

import (
	"fmt"
	"io"
)

// Metric maps a table label to the processed-file key suffix it reads.
type Metric struct {
	Label string
	Key   string
}

// DefaultMetrics mirrors the level columns covered by the comparison tables.
var DefaultMetrics = []Metric{
	{Label: "Oxygen level", Key: "oxygen_level"},
	{Label: "Oncoprotein level", Key: "oncoproteine_level"},
	{Label: "Base transition rate", Key: "base_transition_rate"},
	{Label: "Transition rate", Key: "final_rate_transition"},
	{Label: "Necrosis probability", Key: "probability_necrosis"},
}

// WriteCompareTable prints a fixed-width side-by-side table of one simulation
// index's processed summaries for both models.
func WriteCompareTable(w io.Writer, index int, mine, theirs map[string]float64, metrics []Metric) error {
	if _, err := fmt.Fprintf(w, "\nComparison for simulation %d:\n", index); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-25s %12s %12s %12s %12s %12s %12s\n",
		"Metric", "Mine Min", "Mine Avg", "Mine Max", "Paper Min", "Paper Avg", "Paper Max"); err != nil {
		return err
	}
	for i := 0; i < 97; i++ {
		if _, err := fmt.Fprint(w, "-"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, m := range metrics {
		if _, err := fmt.Fprintf(w, "%-25s %12.6f %12.6f %12.6f %12.6f %12.6f %12.6f\n",
			m.Label,
			mine["min_"+m.Key], mine["avg_"+m.Key], mine["max_"+m.Key],
			theirs["min_"+m.Key], theirs["avg_"+m.Key], theirs["max_"+m.Key]); err != nil {
			return err
		}
	}

	return nil
}

// VectorDiff records one position where two density vectors disagree.
type VectorDiff struct {
	Index int
	A, B  float64
}

// CompareVectors reports every position where a and b differ. Positions past
// the shorter vector's end are reported as differences with the absent side
// left zero.
func CompareVectors(a, b []float64) []VectorDiff {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var diffs []VectorDiff
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			diffs = append(diffs, VectorDiff{Index: i, A: a[i], B: b[i]})
		}
	}
	for i := n; i < len(a); i++ {
		diffs = append(diffs, VectorDiff{Index: i, A: a[i]})
	}
	for i := n; i < len(b); i++ {
		diffs = append(diffs, VectorDiff{Index: i, B: b[i]})
	}

	return diffs
}
