package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"missionlens/internal/analytics"
	"missionlens/internal/config"
	"missionlens/internal/dataset"
	"missionlens/internal/ml"
	"missionlens/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "missionlens",
	Short:   "ISRO mission analytics and success estimation",
	Long:    "Missionlens loads the historical ISRO launch record, computes descriptive aggregates, and trains an exploratory success classifier served over a local dashboard and JSON API.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("missionlens", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/missionlens/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to change the port, dataset path, or model parameters.")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset()
		if err != nil {
			return err
		}

		fmt.Printf("Missions: %d\n", len(data))
		if !data.Empty() {
			fmt.Printf("Years: %d-%d\n", data[0].Year, data[len(data)-1].Year)
		}
		fmt.Printf("Overall success rate: %.1f%%\n", data.SuccessRate()*100)

		fmt.Println("\nTop vehicle families:")
		for _, fr := range analytics.SuccessRates(data) {
			fmt.Printf("  %-12s %3d launches, %.1f%% success\n", fr.Family, fr.TotalLaunches, fr.SuccessRate*100)
		}

		fmt.Println("\nApplications:")
		for _, ac := range analytics.StrategicFocus(data) {
			fmt.Printf("  %-24s %d\n", ac.Application, ac.Count)
		}
		return nil
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the success classifier and print its evaluation metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset()
		if err != nil {
			return err
		}

		model, err := ml.Train(data, trainConfig())
		if err != nil {
			return fmt.Errorf("training model: %w", err)
		}

		m := model.Metrics()
		fmt.Println("Model performance (held-out 20%):")
		fmt.Printf("  Accuracy:  %.3f\n", m.Accuracy)
		fmt.Printf("  Precision: %.3f\n", m.Precision)
		fmt.Printf("  Recall:    %.3f\n", m.Recall)
		fmt.Printf("  F1-Score:  %.3f\n", m.F1)
		fmt.Printf("  ROC-AUC:   %.3f\n", m.ROCAUC)

		fmt.Println("\nTop influential features:")
		for _, fw := range model.Importances() {
			fmt.Printf("  %-40s %.4f\n", fw.Feature, fw.Importance)
		}
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict VEHICLE ORBIT",
	Short: "Estimate the success probability for a vehicle/orbit pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset()
		if err != nil {
			return err
		}

		model, err := ml.Train(data, trainConfig())
		if err != nil {
			return fmt.Errorf("training model: %w", err)
		}

		prob := model.Predict(args[0], args[1])
		fmt.Printf("Estimated success probability for %s to %s: %.1f%%\n", args[0], args[1], prob*100)
		return nil
	},
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local dashboard and API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset()
		if err != nil {
			// Degraded mode: serve the dashboard with an empty dataset so
			// startup failures stay visible instead of crashing the process.
			log.Printf("proceeding without data: %v", err)
			data = dataset.Dataset{}
		}

		cache := ml.NewCache(func() (*ml.Model, error) {
			return ml.Train(data, trainConfig())
		})
		// Warm the cache so the first request does not pay for training.
		if _, err := cache.Get(); err != nil {
			log.Printf("model unavailable: %v", err)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(data, cache, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

// loadDataset loads the configured or bundled mission dump. Errors are
// returned for the CLI to report; only serve degrades to an empty dataset.
func loadDataset() (dataset.Dataset, error) {
	var (
		data dataset.Dataset
		err  error
	)
	if cfg.Dataset.Path != "" {
		data, err = dataset.LoadFile(cfg.Dataset.Path)
	} else {
		data, err = dataset.Load()
	}
	if err != nil {
		var integrity *dataset.IntegrityError
		switch {
		case errors.Is(err, dataset.ErrDataUnavailable):
			return nil, fmt.Errorf("dataset unavailable: %w", err)
		case errors.As(err, &integrity):
			return nil, fmt.Errorf("dataset malformed: %w", err)
		}
		return nil, err
	}
	return data, nil
}

func trainConfig() ml.TrainConfig {
	return ml.TrainConfig{
		Trees:    cfg.Model.Trees,
		MaxDepth: cfg.Model.MaxDepth,
		Seed:     cfg.Model.Seed,
	}
}
