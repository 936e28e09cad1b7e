package templates

const WrapperTemplate = `% Generated on {{.GeneratedDate}}
% Comparison: {{.ComparisonName}}
% Field: {{.Field}}
\begin{center}
    \begin{figure}[H]
    \centering
    \resizebox{1\linewidth}{!}{\input{./{{.PlotFileName}} }}
    \caption[{{.ShortCaption}}]{ {{.Caption}} }
    \label{fig:{{.ComparisonName}}-{{.Field}}}
    \end{figure}
\end{center}
`

type WrapperData struct {
	GeneratedDate  string
	ComparisonName string
	Field          string
	PlotFileName   string
	ShortCaption   string
	Caption        string
}
