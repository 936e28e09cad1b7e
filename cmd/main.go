package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cartcompare/internal/config"
	"cartcompare/internal/levels"
	"cartcompare/internal/logging"
	"cartcompare/internal/plot"
	"cartcompare/internal/plot/density"
	"cartcompare/internal/plot/exectimes"
	"cartcompare/internal/plot/forces"
	"cartcompare/internal/plot/timeseries"
	"cartcompare/internal/report"
	"cartcompare/internal/run"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func loadEnvironment() {
	logger := logging.GetLogger()

	// Try to load .env file from current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		} else {
			logger.WithField("file", envFile).Debug("Loaded environment variables")
		}
	} else {
		// Try to load from the application directory
		if execPath, err := os.Executable(); err == nil {
			appDir := filepath.Dir(execPath)
			envFile = filepath.Join(appDir, ".env")
			if _, err := os.Stat(envFile); err == nil {
				if err := godotenv.Load(envFile); err != nil {
					logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
				} else {
					logger.WithField("file", envFile).Debug("Loaded environment variables")
				}
			}
		}
	}
}

func main() {
	logger := logging.GetLogger()

	loadEnvironment()

	var configFile string
	var field, ratio string
	var sdMultiplier float64
	var minVal, maxVal float64
	var minSet, maxSet bool
	var onlyPlot, onlyWrapper bool
	var logLevel string

	var mineFile, paperFile string
	var mineLabel, paperLabel string
	var column, xLabel string
	var timeOffset float64
	var categories, modelNames []string

	var levelsDir, levelsName, levelsOut string
	var levelsCount, levelsIndex int

	rootCmd := &cobra.Command{
		Use:     "cartcompare",
		Version: report.ToolVersion,
		Short:   "Tumor simulation comparison tool",
		Long:    "A configurable tool for comparing replicate sets of agent-based tumor simulations across implementations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				if err := logging.SetLogLevel(logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Run a comparison",
		Long:  "Load every configured model's replicates, aggregate the configured fields and write plots, exports and the artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(configFile)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a comparison configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(configFile)
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Generate plots from simulation data",
		Long:  "Generate LaTeX/TikZ plots from replicate sets and related readouts",
	}

	timeseriesCmd := &cobra.Command{
		Use:   "timeseries",
		Short: "Generate a timeseries comparison plot",
		Long:  "Generate a mean and standard deviation band plot for one field across all configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			var minPtr, maxPtr *float64
			if minSet {
				minPtr = &minVal
			}
			if maxSet {
				maxPtr = &maxVal
			}
			return generateTimeseriesPlot(configFile, field, ratio, sdMultiplier, minPtr, maxPtr, onlyPlot, onlyWrapper)
		},
	}

	densityCmd := &cobra.Command{
		Use:   "density",
		Short: "Generate a density comparison plot",
		Long:  "Generate a kernel density estimate plot comparing one readout column between two result files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateDensityPlot(mineFile, paperFile, column, xLabel, mineLabel, paperLabel)
		},
	}

	exectimesCmd := &cobra.Command{
		Use:   "exectimes",
		Short: "Generate an execution time plot",
		Long:  "Generate a min/mean/max execution time plot across treatment scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateExecTimesPlot(mineFile, categories, modelNames)
		},
	}

	forcesCmd := &cobra.Command{
		Use:   "forces",
		Short: "Generate a force trace plot",
		Long:  "Generate per-axis force and displacement panels comparing two single-cell traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateForcesPlot(mineFile, paperFile, mineLabel, paperLabel, timeOffset)
		},
	}

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "Process and compare transition level readouts",
	}

	levelsProcessCmd := &cobra.Command{
		Use:   "process",
		Short: "Summarize level readout files",
		Long:  "Reduce each raw level readout file to per-column min, mean and max",
		RunE: func(cmd *cobra.Command, args []string) error {
			return processLevels(levelsDir, levelsName, levelsCount, levelsOut)
		},
	}

	levelsCompareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Print a comparison table of two processed level files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareLevels(mineFile, paperFile, levelsIndex)
		},
	}

	levelsVectorsCmd := &cobra.Command{
		Use:   "vectors",
		Short: "Diff two level vector files elementwise",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareLevelVectors(mineFile, paperFile)
		},
	}

	reportCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to comparison configuration file")
	reportCmd.MarkFlagRequired("config")

	validateCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to comparison configuration file")
	validateCmd.MarkFlagRequired("config")

	timeseriesCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to comparison configuration file")
	timeseriesCmd.Flags().StringVar(&field, "field", "", "Field to plot")
	timeseriesCmd.Flags().StringVar(&ratio, "ratio", "", "Configured ratio to plot instead of a field")
	timeseriesCmd.Flags().Float64Var(&sdMultiplier, "sd", 0, "Standard deviation band multiplier (0 = use configured value)")
	timeseriesCmd.Flags().Float64Var(&minVal, "min", 0, "Minimum Y-axis value")
	timeseriesCmd.Flags().Float64Var(&maxVal, "max", 0, "Maximum Y-axis value")
	timeseriesCmd.Flags().BoolVar(&onlyPlot, "plot", false, "Print only the plot file (TikZ)")
	timeseriesCmd.Flags().BoolVar(&onlyWrapper, "wrapper", false, "Print only the wrapper file (LaTeX)")
	timeseriesCmd.MarkFlagRequired("config")

	timeseriesCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		minSet = cmd.Flags().Changed("min")
		maxSet = cmd.Flags().Changed("max")
		if field == "" && ratio == "" {
			return fmt.Errorf("either --field or --ratio must be set")
		}
		if field != "" && ratio != "" {
			return fmt.Errorf("--field and --ratio are mutually exclusive")
		}
		return nil
	}

	densityCmd.Flags().StringVar(&mineFile, "mine", "", "Result file of the reimplementation")
	densityCmd.Flags().StringVar(&paperFile, "paper", "", "Result file of the reference implementation")
	densityCmd.Flags().StringVar(&column, "column", "", "Column to compare")
	densityCmd.Flags().StringVar(&xLabel, "xlabel", "", "X-axis label (defaults to the column name)")
	densityCmd.Flags().StringVar(&mineLabel, "mine-label", "CARTopiaX", "Legend label of the reimplementation")
	densityCmd.Flags().StringVar(&paperLabel, "paper-label", "Nature paper", "Legend label of the reference implementation")
	densityCmd.MarkFlagRequired("mine")
	densityCmd.MarkFlagRequired("paper")
	densityCmd.MarkFlagRequired("column")

	exectimesCmd.Flags().StringVar(&mineFile, "file", "", "CSV file with one column per scenario and model")
	exectimesCmd.Flags().StringSliceVar(&categories, "categories", []string{"0doses", "1dose", "2doses"}, "Scenario column prefixes")
	exectimesCmd.Flags().StringSliceVar(&modelNames, "models", []string{"CARTopiaX", "Nature"}, "Model column suffixes")
	exectimesCmd.MarkFlagRequired("file")

	forcesCmd.Flags().StringVar(&mineFile, "mine", "", "Force trace file of the reimplementation")
	forcesCmd.Flags().StringVar(&paperFile, "paper", "", "Force trace file of the reference implementation")
	forcesCmd.Flags().StringVar(&mineLabel, "mine-label", "CARTopiaX", "Legend label of the reimplementation")
	forcesCmd.Flags().StringVar(&paperLabel, "paper-label", "Nature paper", "Legend label of the reference implementation")
	forcesCmd.Flags().Float64Var(&timeOffset, "offset", 0, "Time offset applied to the reference trace")
	forcesCmd.MarkFlagRequired("mine")
	forcesCmd.MarkFlagRequired("paper")

	levelsProcessCmd.Flags().StringVar(&levelsDir, "dir", "", "Directory holding the raw readout files")
	levelsProcessCmd.Flags().StringVar(&levelsName, "name", "levels", "File name stem, numbered name<i>.csv")
	levelsProcessCmd.Flags().IntVar(&levelsCount, "count", 1, "Number of readout files")
	levelsProcessCmd.Flags().StringVar(&levelsOut, "out", "", "Output directory (defaults to the input directory)")
	levelsProcessCmd.MarkFlagRequired("dir")

	levelsCompareCmd.Flags().StringVar(&mineFile, "mine", "", "Processed level file of the reimplementation")
	levelsCompareCmd.Flags().StringVar(&paperFile, "paper", "", "Processed level file of the reference implementation")
	levelsCompareCmd.Flags().IntVar(&levelsIndex, "index", 1, "Replicate index printed in the table header")
	levelsCompareCmd.MarkFlagRequired("mine")
	levelsCompareCmd.MarkFlagRequired("paper")

	levelsVectorsCmd.Flags().StringVar(&mineFile, "mine", "", "Vector file of the reimplementation")
	levelsVectorsCmd.Flags().StringVar(&paperFile, "paper", "", "Vector file of the reference implementation")
	levelsVectorsCmd.MarkFlagRequired("mine")
	levelsVectorsCmd.MarkFlagRequired("paper")

	plotCmd.AddCommand(timeseriesCmd)
	plotCmd.AddCommand(densityCmd)
	plotCmd.AddCommand(exectimesCmd)
	plotCmd.AddCommand(forcesCmd)

	levelsCmd.AddCommand(levelsProcessCmd)
	levelsCmd.AddCommand(levelsCompareCmd)
	levelsCmd.AddCommand(levelsVectorsCmd)

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(levelsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Fatal("Command execution failed")
	}
}

func validateConfig(configFile string) error {
	logger := logging.GetLogger()

	_, err := config.LoadConfig(configFile)
	if err != nil {
		logger.WithField("config_file", configFile).WithError(err).Error("Configuration validation failed")
		return err
	}
	logger.WithField("config_file", configFile).Info("Configuration is valid")
	return nil
}

func runReport(configFile string) error {
	logger := logging.GetLogger()

	cfg, content, err := config.LoadConfigWithContent(configFile)
	if err != nil {
		logger.WithField("config_file", configFile).WithError(err).Error("Failed to load configuration")
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set log level from configuration
	if cfg.Comparison.LogLevel != "" {
		if err := logging.SetLogLevel(cfg.Comparison.LogLevel); err != nil {
			logger.WithField("log_level", cfg.Comparison.LogLevel).WithError(err).Warn("Invalid log level in config, using INFO")
			logging.SetLogLevel("info")
		} else {
			logger.WithField("log_level", cfg.Comparison.LogLevel).Debug("Log level set from configuration")
		}
	}

	logger.WithFields(logrus.Fields{
		"comparison": cfg.Comparison.Name,
		"models":     len(cfg.Models),
		"days":       cfg.Comparison.Days,
	}).Info("Starting comparison")

	driver := report.NewDriver(cfg, content)
	result, err := driver.Run()
	if err != nil {
		logger.WithError(err).Error("Comparison failed")
		return fmt.Errorf("comparison failed: %w", err)
	}

	for _, model := range result.Models {
		logger.WithFields(logrus.Fields{
			"model":   model.Key,
			"loaded":  model.Load.Loaded,
			"skipped": len(model.Load.Skipped),
			"fields":  len(model.Fields),
			"ratios":  len(model.Ratios),
		}).Info("Model aggregated")
	}

	logger.Info("Comparison completed successfully")
	return nil
}

func generateTimeseriesPlot(configFile, field, ratio string, sdMultiplier float64, minPtr, maxPtr *float64, onlyPlot, onlyWrapper bool) error {
	logger := logging.GetLogger()

	cfg, content, err := config.LoadConfigWithContent(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	name := field
	isRatio := false
	if ratio != "" {
		name = ratio
		isRatio = true
	}

	// Aggregate only the requested curve
	if isRatio {
		var ratios []config.RatioConfig
		for _, r := range cfg.Comparison.Ratios {
			if r.Name == name {
				ratios = append(ratios, r)
			}
		}
		if len(ratios) == 0 {
			return fmt.Errorf("ratio %s is not configured", name)
		}
		cfg.Comparison.Ratios = ratios
		cfg.Comparison.Fields = nil
	} else {
		cfg.Comparison.Fields = []string{name}
		cfg.Comparison.Ratios = nil
	}

	driver := report.NewDriver(cfg, content)
	result, err := driver.Aggregate()
	if err != nil {
		return fmt.Errorf("failed to aggregate: %w", err)
	}

	models := result.ModelSeriesFor(name, isRatio)
	if len(models) == 0 {
		return fmt.Errorf("no model produced data for %s", name)
	}

	sd := cfg.Comparison.SDMultiplier
	if sdMultiplier > 0 {
		sd = sdMultiplier
	}

	opts := timeseries.PlotOptions{
		ComparisonName: result.Comparison,
		Description:    result.Description,
		Field:          name,
		IsRatio:        isRatio,
		Days:           result.Days,
		SDMultiplier:   sd,
		AxisMode:       result.AxisMode,
		MinOverride:    minPtr,
		MaxOverride:    maxPtr,
	}

	plotMgr := plot.NewManager()
	plotTikz, wrapperTex, err := plotMgr.GenerateTimeseriesPlot(opts, models)
	if err != nil {
		logger.WithError(err).Error("Failed to generate plot")
		return fmt.Errorf("failed to generate plot: %w", err)
	}

	printPlotOutput(plotTikz, wrapperTex, onlyPlot, onlyWrapper)

	logger.Debug("Timeseries plot generated successfully")
	return nil
}

func generateDensityPlot(mineFile, paperFile, column, xLabel, mineLabel, paperLabel string) error {
	logger := logging.GetLogger()

	mine, err := run.LoadNamedColumn(mineFile, column)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", mineFile, err)
	}
	paper, err := run.LoadNamedColumn(paperFile, column)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", paperFile, err)
	}

	if xLabel == "" {
		xLabel = column
	}

	opts := density.PlotOptions{
		Column: column,
		XLabel: xLabel,
		LabelA: mineLabel,
		LabelB: paperLabel,
	}

	plotMgr := plot.NewManager()
	plotTikz, err := plotMgr.GenerateDensityPlot(opts, mine, paper)
	if err != nil {
		logger.WithError(err).Error("Failed to generate plot")
		return fmt.Errorf("failed to generate plot: %w", err)
	}

	fmt.Println(plotTikz)
	return nil
}

func generateExecTimesPlot(file string, categories, modelNames []string) error {
	logger := logging.GetLogger()

	times, err := run.LoadExecTimes(file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}

	opts := exectimes.PlotOptions{
		Categories: categories,
		Models:     modelNames,
	}

	plotMgr := plot.NewManager()
	plotTikz, err := plotMgr.GenerateExecTimesPlot(opts, times)
	if err != nil {
		logger.WithError(err).Error("Failed to generate plot")
		return fmt.Errorf("failed to generate plot: %w", err)
	}

	fmt.Println(plotTikz)
	return nil
}

func generateForcesPlot(mineFile, paperFile, mineLabel, paperLabel string, timeOffset float64) error {
	logger := logging.GetLogger()

	mine, err := run.LoadMatrix(mineFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", mineFile, err)
	}
	paper, err := run.LoadMatrix(paperFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", paperFile, err)
	}

	opts := forces.PlotOptions{
		LabelA:      mineLabel,
		LabelB:      paperLabel,
		TimeOffsetB: timeOffset,
	}

	plotMgr := plot.NewManager()
	plotTikz, err := plotMgr.GenerateForcesPlot(opts, mine, paper)
	if err != nil {
		logger.WithError(err).Error("Failed to generate plot")
		return fmt.Errorf("failed to generate plot: %w", err)
	}

	fmt.Println(plotTikz)
	return nil
}

func processLevels(dir, name string, count int, out string) error {
	logger := logging.GetLogger()

	if out == "" {
		out = dir
	}

	processed, err := levels.ProcessBatch(dir, name, count, out, levels.DefaultColumns)
	if err != nil {
		logger.WithError(err).Error("Failed to process level readouts")
		return err
	}

	logger.WithFields(logrus.Fields{
		"dir":       dir,
		"processed": processed,
	}).Info("Level readouts processed")
	return nil
}

func compareLevels(mineFile, paperFile string, index int) error {
	mine, err := levels.ReadProcessed(mineFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", mineFile, err)
	}
	paper, err := levels.ReadProcessed(paperFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", paperFile, err)
	}

	return levels.WriteCompareTable(os.Stdout, index, mine, paper, levels.DefaultMetrics)
}

func compareLevelVectors(mineFile, paperFile string) error {
	logger := logging.GetLogger()

	mine, err := run.LoadVector(mineFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", mineFile, err)
	}
	paper, err := run.LoadVector(paperFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", paperFile, err)
	}

	diffs := levels.CompareVectors(mine, paper)
	if len(diffs) == 0 {
		fmt.Printf("Vectors match (%d values)\n", len(mine))
		return nil
	}

	for _, diff := range diffs {
		fmt.Printf("index %d: %g vs %g\n", diff.Index, diff.A, diff.B)
	}
	logger.WithField("differences", len(diffs)).Warn("Vectors differ")
	return nil
}

func printPlotOutput(plotTikz, wrapperTex string, onlyPlot, onlyWrapper bool) {
	// Determine what to print
	showPlot := !onlyWrapper
	showWrapper := !onlyPlot

	if showPlot {
		fmt.Println(plotTikz)
		if showWrapper {
			fmt.Println()
		}
	}

	if showWrapper {
		fmt.Println(wrapperTex)
	}
}
