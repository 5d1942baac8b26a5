// conciergesim generates a multi-month health-concierge chat history for a
// fixed member profile: deterministic for a given seed, optionally enhanced
// by a local language model.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/conciergesim/internal/config"
	"github.com/talgya/conciergesim/internal/nlg"
	"github.com/talgya/conciergesim/internal/profile"
	"github.com/talgya/conciergesim/internal/sim"
)

const version = "0.3.0"

var (
	flagSeed      int64
	flagStart     string
	flagWeeks     int
	flagTimezone  string
	flagOutputDir string
	flagArchive   string
	flagConfig    string
	flagVerbose   bool

	flagNLGProvider string
	flagNLGMode     string
	flagNLGModel    string
	flagNLGHost     string
)

func main() {
	root := &cobra.Command{
		Use:   "conciergesim",
		Short: "Generate a simulated health-concierge chat history",
		Long: "conciergesim simulates a multi-month WhatsApp-style conversation between a\n" +
			"health-concierge care team and one member: weekly biomarker evolution,\n" +
			"scheduled check-ins, travel adaptations, diagnostics, and member questions.\n" +
			"Runs are deterministic for a given seed.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().Int64Var(&flagSeed, "seed", 42, "random seed (same seed, same conversation)")
	root.Flags().StringVar(&flagStart, "start", "2025-01-06", "start date (YYYY-MM-DD, should be a Monday)")
	root.Flags().IntVar(&flagWeeks, "weeks", 34, "number of weeks to simulate")
	root.Flags().StringVar(&flagTimezone, "timezone", "Asia/Singapore", "IANA timezone for message timestamps")
	root.Flags().StringVar(&flagOutputDir, "output-dir", "out", "directory for conversation exports")
	root.Flags().StringVar(&flagArchive, "archive", "", "optional SQLite archive path")
	root.Flags().StringVar(&flagConfig, "config", "", "optional YAML config file")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.Flags().StringVar(&flagNLGProvider, "nlg-provider", "none", "text enhancement provider (none|ollama)")
	root.Flags().StringVar(&flagNLGMode, "nlg-mode", "paraphrase", "enhancement mode (off|paraphrase|full)")
	root.Flags().StringVar(&flagNLGModel, "nlg-model", "llama3.1:8b", "model name for the ollama provider")
	root.Flags().StringVar(&flagNLGHost, "nlg-host", "http://localhost:11434", "ollama host")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("conciergesim", version)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "roster",
		Short: "Print the member and care team",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range profile.Team() {
				fmt.Printf("%-14s %s\n", p.Name, p.Role)
			}
		},
	})

	if err := root.Execute(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := sim.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %s messages over %d weeks in %s\n",
		humanize.Comma(int64(len(res.Messages))), cfg.Weeks,
		time.Since(started).Round(time.Millisecond))
	if res.TextPath != "" {
		fmt.Printf("  transcript: %s\n  records:    %s\n", res.TextPath, res.JSONLPath)
	}
	return nil
}

// resolveConfig merges defaults, the optional YAML file, and flags; flags win
// when explicitly set.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	seed := flagSeed
	start := flagStart
	weeks := flagWeeks
	tz := flagTimezone
	outputDir := flagOutputDir
	archive := flagArchive

	nlgCfg := nlg.DefaultConfig()
	nlgCfg.Provider = flagNLGProvider
	nlgCfg.Mode = flagNLGMode
	nlgCfg.Model = flagNLGModel
	nlgCfg.Host = flagNLGHost

	if flagConfig != "" {
		f, err := config.Load(flagConfig)
		if err != nil {
			return sim.Config{}, err
		}
		changed := cmd.Flags().Changed

		if f.Seed != nil && !changed("seed") {
			seed = *f.Seed
		}
		if f.Start != nil && !changed("start") {
			start = *f.Start
		}
		if f.Weeks != nil && !changed("weeks") {
			weeks = *f.Weeks
		}
		if f.Timezone != nil && !changed("timezone") {
			tz = *f.Timezone
		}
		if f.OutputDir != nil && !changed("output-dir") {
			outputDir = *f.OutputDir
		}
		if f.Archive != nil && !changed("archive") {
			archive = *f.Archive
		}
		if f.NLG.Provider != nil && !changed("nlg-provider") {
			nlgCfg.Provider = *f.NLG.Provider
		}
		if f.NLG.Mode != nil && !changed("nlg-mode") {
			nlgCfg.Mode = *f.NLG.Mode
		}
		if f.NLG.Model != nil && !changed("nlg-model") {
			nlgCfg.Model = *f.NLG.Model
		}
		if f.NLG.Host != nil && !changed("nlg-host") {
			nlgCfg.Host = *f.NLG.Host
		}
		if f.NLG.TimeoutS != nil {
			nlgCfg.Timeout = time.Duration(*f.NLG.TimeoutS) * time.Second
		}
		if f.NLG.Temp != nil {
			nlgCfg.Temperature = *f.NLG.Temp
		}
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return sim.Config{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	startDate, err := time.ParseInLocation("2006-01-02", start, loc)
	if err != nil {
		return sim.Config{}, fmt.Errorf("parse start date %q: %w", start, err)
	}

	return sim.Config{
		Seed:        seed,
		Start:       startDate,
		Weeks:       weeks,
		OutputDir:   outputDir,
		ArchivePath: archive,
		NLG:         nlgCfg,
	}, nil
}
