package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Comparison: {{.ComparisonName}}
% Description: {{.Description}}
% Field: {{.Field}}
% Time bound: {{.Days}} days
% Std band: mean +/- {{.SDMultiplier}} sigma (population std over runs)
% Axis mode: {{.AxisMode}}
{{range .Plots}}% Model: {{.Label}} ({{.Runs}} runs loaded, {{.Skipped}} skipped)
{{end}}%
% Requires \usepgfplotslibrary{fillbetween}
\begin{tikzpicture}
	\begin{axis}[
		% title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		ylabel={ {{.YLabel}} },
		width=\textwidth,
		height=0.6\textwidth,
		xmin={{.XMin}}, xmax={{.XMax}},
		ymin={{.YMin}}, ymax={{.YMax}},
		ymajorgrids,
		grid style=dashed,
		legend pos=north east,
	]

{{range .Plots}}
% Model: {{.Label}}
\addplot[name path={{.UpperName}},draw=none,forget plot]
  coordinates {
{{range .UpperCoordinates}}    {{.}}
{{end}}  };
\addplot[name path={{.LowerName}},draw=none,forget plot]
  coordinates {
{{range .LowerCoordinates}}    {{.}}
{{end}}  };
\addplot[{{.BandStyle}},forget plot] fill between[of={{.UpperName}} and {{.LowerName}}];
\addplot[{{.Style}}]
  coordinates {
{{range .MeanCoordinates}}    {{.}}
{{end}}  };
\addlegendentry{ {{.LegendEntry}} }

{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate  string
	ComparisonName string
	Description    string
	Field          string
	Days           float64
	SDMultiplier   float64
	AxisMode       string
	Title          string
	XLabel         string
	YLabel         string
	XMin           string
	XMax           string
	YMin           string
	YMax           string
	Plots          []PlotSeries
}

type PlotSeries struct {
	Label            string
	Runs             int
	Skipped          int
	Style            string
	BandStyle        string
	UpperName        string
	LowerName        string
	LegendEntry      string
	MeanCoordinates  []string
	UpperCoordinates []string
	LowerCoordinates []string
}
