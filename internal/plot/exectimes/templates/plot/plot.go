package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Execution time comparison, min/mean/max per dose category
{{range .Models}}% Model: {{.Label}}
{{end}}%
\begin{tikzpicture}
	\begin{axis}[
		xlabel={Number of Doses},
		ylabel={Execution Time (hours)},
		width=\textwidth,
		height=0.6\textwidth,
		ymin=0,
		xtick={ {{.Ticks}} },
		xticklabels={ {{.TickLabels}} },
		ymajorgrids,
		grid style=dashed,
		legend pos=north east,
	]

{{range .Models}}
% {{.Label}}: whiskers span min..max, marker at the mean
{{range .Whiskers}}\draw[{{$.WhiskerFor .}}] (axis cs:{{.Pos}},{{.Min}}) -- (axis cs:{{.Pos}},{{.Max}});
\draw[{{$.WhiskerFor .}}] (axis cs:{{.CapLeft}},{{.Min}}) -- (axis cs:{{.CapRight}},{{.Min}});
\draw[{{$.WhiskerFor .}}] (axis cs:{{.CapLeft}},{{.Max}}) -- (axis cs:{{.CapRight}},{{.Max}});
{{end}}\addplot[{{.Color}},thick,mark=*,mark options={fill={{.Color}},scale=1.2}]
  coordinates {
{{range .Whiskers}}    ({{.Pos}},{{.Mean}})
{{end}}  };
\addlegendentry{ {{.Label}} }

{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate string
	Ticks         string
	TickLabels    string
	Models        []ModelWhiskers
}

// WhiskerFor lets the template reuse the owning model's color for each
// whisker draw command.
func (d *PlotData) WhiskerFor(w Whisker) string {
	return w.Color + ",semithick"
}

type ModelWhiskers struct {
	Label    string
	Color    string
	Whiskers []Whisker
}

type Whisker struct {
	Pos      string
	CapLeft  string
	CapRight string
	Color    string
	Min      string
	Mean     string
	Max      string
}
