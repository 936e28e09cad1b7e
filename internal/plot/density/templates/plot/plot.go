package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Density comparison: {{.Column}}
% {{.LabelA}}: {{.CountA}} samples, mean {{.MeanA}}
% {{.LabelB}}: {{.CountB}} samples, mean {{.MeanB}}
%
\begin{tikzpicture}
	\begin{axis}[
		xlabel={ {{.XLabel}} },
		ylabel={Probability Density},
		width=\textwidth,
		height=0.6\textwidth,
		ymin=0,
		ymajorgrids,
		grid style=dashed,
		legend pos=north east,
	]

{{range .Curves}}
% {{.Label}}
\addplot[{{.Style}},fill opacity=0.4] coordinates {
{{range .Coordinates}}    {{.}}
{{end}}  } \closedcycle;
\addlegendentry{ {{.Label}} }
\draw[{{.Color}},densely dashed,thick] (axis cs:{{.Mean}},0) -- (axis cs:{{.Mean}},{{.PeakDensity}})
  node[pos=0.9,rotate=90,anchor=south,font=\scriptsize,black] {Mean ({{.Label}}): {{.MeanLabel}}};

{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate string
	Column        string
	XLabel        string
	LabelA        string
	LabelB        string
	CountA        int
	CountB        int
	MeanA         string
	MeanB         string
	Curves        []Curve
}

type Curve struct {
	Label       string
	Color       string
	Style       string
	Mean        string
	MeanLabel   string
	PeakDensity string
	Coordinates []string
}
