package run

import (
	"math"
	"testing"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"517m13,098s", 31033.098},
		{"42m7.5s", 2527.5},
		{"0m59,999s", 59.999},
		{" 1m0s ", 60},
	}

	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		if err != nil {
			t.Fatalf("ParseClockTime(%q): %v", c.in, err)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ParseClockTime(%q): expected %g, got %g", c.in, c.want, got)
		}
	}
}

func TestParseClockTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "13s", "am3s", "5mxs"} {
		if _, err := ParseClockTime(in); err == nil {
			t.Fatalf("ParseClockTime(%q): expected error", in)
		}
	}
}

func TestLoadExecTimes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "times.csv",
		"0doses_CARTopiaX,0doses_Nature\n"+
			"10m0s,20m0s\n"+
			"12m30s,\"18m0,5s\"\n")

	times, err := LoadExecTimes(path)
	if err != nil {
		t.Fatalf("LoadExecTimes: %v", err)
	}
	if len(times.Order) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(times.Order))
	}
	mine := times.Columns["0doses_CARTopiaX"]
	if len(mine) != 2 || mine[0] != 600 || mine[1] != 750 {
		t.Fatalf("unexpected column values: %v", mine)
	}
	theirs := times.Columns["0doses_Nature"]
	if len(theirs) != 2 || theirs[1] != 1080.5 {
		t.Fatalf("decimal comma cell mishandled: %v", theirs)
	}
}
