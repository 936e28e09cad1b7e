package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Force/displacement trace comparison
% {{.LabelA}}: {{.RowsA}} samples, {{.LabelB}}: {{.RowsB}} samples
%
% Requires \usepgfplotslibrary{groupplots}
\begin{tikzpicture}
	\begin{groupplot}[
		group style={group size=2 by 2, vertical sep=1.8cm, horizontal sep=1.8cm},
		width=0.48\textwidth,
		height=0.36\textwidth,
		xlabel={Time},
		grid=both,
		grid style={opacity=0.3},
		legend pos=north east,
	]

{{range .Panels}}
\nextgroupplot[ylabel={ {{.YLabel}} }, title={ {{.Title}} }]
\addplot[blue,thick]
  coordinates {
{{range .CoordinatesA}}    {{.}}
{{end}}  };
\addlegendentry{ {{$.LabelA}} }
\addplot[red,thick,densely dashed]
  coordinates {
{{range .CoordinatesB}}    {{.}}
{{end}}  };
\addlegendentry{ {{$.LabelB}} }

{{end}}
	\end{groupplot}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate string
	LabelA        string
	LabelB        string
	RowsA         int
	RowsB         int
	Panels        []Panel
}

type Panel struct {
	Title        string
	YLabel       string
	CoordinatesA []string
	CoordinatesB []string
}
