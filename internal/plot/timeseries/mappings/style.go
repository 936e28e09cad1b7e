package mappings

type PlotStyle struct {
	Color       string
	LineStyle   string
	LineWidth   string
	BandOpacity string
}

// ModelStyles follows the published comparison figures: solid lines for the
// first model, dashed for the second, matching colors for the std bands.
var ModelStyles = []PlotStyle{
	{Color: "red", LineStyle: "solid", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "blue", LineStyle: "densely dashed", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "green!70!black", LineStyle: "solid", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "purple", LineStyle: "densely dashed", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "orange", LineStyle: "solid", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "brown", LineStyle: "densely dashed", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "teal", LineStyle: "solid", LineWidth: "thick", BandOpacity: "0.2"},
	{Color: "magenta", LineStyle: "densely dashed", LineWidth: "thick", BandOpacity: "0.2"},
}

func GetModelStyle(modelIndex int) PlotStyle {
	if modelIndex < 0 {
		modelIndex = 0
	}
	return ModelStyles[modelIndex%len(ModelStyles)]
}

func (ps PlotStyle) ToTikzOptions() string {
	options := ps.Color
	if ps.LineStyle != "" {
		options += "," + ps.LineStyle
	}
	if ps.LineWidth != "" {
		options += "," + ps.LineWidth
	}
	return options
}

func (ps PlotStyle) ToBandOptions() string {
	return ps.Color + ",opacity=" + ps.BandOpacity
}
