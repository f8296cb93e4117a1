package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chrisdamba/surplussim/internal/factories"
	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/output"
	"github.com/chrisdamba/surplussim/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "surplussim",
	Short: "Simulates surplus food bundle marketplace data",
	Long: `surplussim generates a reproducible synthetic dataset for a surplus food marketplace:
vendors post discounted bundles, customers reserve and collect them, loyalty streaks
and disputes follow, and every bundle yields one labelled training row.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg)
	},
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"seed":           "seed",
	"bundles":        "bundles",
	"users":          "users",
	"vendors":        "vendors",
	"start-date":     "start_date",
	"end-date":       "end_date",
	"reference-date": "reference_date",
	"workers":        "workers",
	"output":         "output_destination",
	"output-format":  "output_format",
	"output-path":    "output_path",
	"fail-fast":      "fail_fast",
	"progress":       "progress",
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.yaml)")

	flags := rootCmd.Flags()
	flags.Int64("seed", 12, "Random seed for simulation")
	flags.Int("bundles", 1000, "Number of bundles to post")
	flags.Int("users", 250, "Number of customers")
	flags.Int("vendors", 20, "Number of vendors")
	flags.String("start-date", "2025-10-01", "First posting date (YYYY-MM-DD or RFC3339)")
	flags.String("end-date", "2026-01-14", "Last posting date (YYYY-MM-DD or RFC3339)")
	flags.String("reference-date", "2026-01-15", "Date streaks are measured against")
	flags.Int("workers", 4, "Number of goroutines simulating reservations")
	flags.String("output", models.OutputConsole, "Output destination: console, local, s3, kafka or postgres")
	flags.String("output-format", models.FormatJSON, "Local output format: json, csv or parquet")
	flags.String("output-path", "", "Base directory for local output")
	flags.Bool("fail-fast", false, "Abort on the first invalid bundle instead of skipping it")
	flags.Bool("progress", true, "Show a progress bar")

	bindFlags(viper.GetViper(), flags)
}

// bindFlags binds each flag to its config key, so flags only override the
// config file when they are set explicitly.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("Failed to bind flag %s: %v", flag, err)
		}
	}
}

// initEnv loads a .env file from the working directory when one exists.
func initEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
}

func run(ctx context.Context, cfg *models.Config) error {
	ref, users, err := factories.NewReferenceData(cfg, simulator.SubStream(cfg.Seed, "reference"))
	if err != nil {
		return err
	}

	writer, err := newResultWriter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	sim := simulator.NewSimulator(cfg, ref, users)
	_, err = sim.Run(ctx, writer)
	return err
}

type resultWriteCloser interface {
	simulator.ResultWriter
	io.Closer
}

func newResultWriter(ctx context.Context, cfg *models.Config) (resultWriteCloser, error) {
	if cfg.OutputDestination == models.OutputPostgres {
		pg, err := output.NewPostgresOutput(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	dest, err := simulator.NewOutputDestination(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create output destination: %w", err)
	}
	return simulator.NewTopicWriter(dest), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
