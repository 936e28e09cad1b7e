package config

type ComparisonConfig struct {
	Comparison ComparisonInfo         `yaml:"comparison"`
	Models     map[string]ModelConfig `yaml:",inline"`
}

type ComparisonInfo struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Days         float64       `yaml:"days"`
	SDMultiplier float64       `yaml:"sd_multiplier"`
	LogLevel     string        `yaml:"log_level"`
	Axis         AxisConfig    `yaml:"axis"`
	Fields       []string      `yaml:"fields"`
	Ratios       []RatioConfig `yaml:"ratios"`
	Output       OutputConfig  `yaml:"output"`
}

type AxisConfig struct {
	Mode       string `yaml:"mode"`
	GridPoints int    `yaml:"grid_points"`
}

type RatioConfig struct {
	Name        string `yaml:"name"`
	Numerator   string `yaml:"numerator"`
	Denominator string `yaml:"denominator"`
}

type OutputConfig struct {
	PlotDir     string `yaml:"plot_dir"`
	ExportDir   string `yaml:"export_dir"`
	ArtifactDir string `yaml:"artifact_dir"`
	PNG         bool   `yaml:"png"`
}

type ModelConfig struct {
	KeyName    string   `yaml:"-"`
	Index      int      `yaml:"index"`
	Label      string   `yaml:"label"`
	Dir        string   `yaml:"dir"`
	Pattern    string   `yaml:"pattern"`
	Start      int      `yaml:"start"`
	Count      int      `yaml:"count"`
	Format     string   `yaml:"format"`
	TimeColumn string   `yaml:"time_column"`
	TimeUnit   string   `yaml:"time_unit"`
	Columns    []string `yaml:"columns"`
	SkipRows   int      `yaml:"skip_rows"`
}

// TimeDivisor converts the model's native time unit into days.
func (m *ModelConfig) TimeDivisor() float64 {
	if m.TimeUnit == "minutes" {
		return 1440
	}
	return 1
}

func (c *ComparisonConfig) GetModelsSorted() []ModelConfig {
	var models []ModelConfig
	for _, model := range c.Models {
		models = append(models, model)
	}

	// Sort by index
	for i := 0; i < len(models)-1; i++ {
		for j := i + 1; j < len(models); j++ {
			if models[i].Index > models[j].Index {
				models[i], models[j] = models[j], models[i]
			}
		}
	}

	return models
}
