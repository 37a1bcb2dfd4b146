package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shortfall_service/internal/batch"
	"shortfall_service/internal/config"
	"shortfall_service/internal/observability"
)

// cliLogger logs to stderr so stdout carries only predictions.
func cliLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return observability.NewLogger(cmd.ErrOrStderr(), observability.LogConfig{Level: cfg.LogLevel, Format: "text"})
}

func newPredictCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [record.json]",
		Short: "Predict one JSON record read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd, *cfg)

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open record: %w", err)
				}
				defer f.Close()
				in = f
			}
			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}

			a, err := newApp(cmd.Context(), *cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			prediction, err := a.service.Predict(cmd.Context(), data)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(prediction.Values)
		},
	}
}

func newBatchCommand(cfg *config.Config) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Predict every row of a CSV file of records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := cliLogger(cmd, *cfg)

			in, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer in.Close()

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			a, err := newApp(cmd.Context(), *cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := batch.Score(cmd.Context(), in, out, a.service)
			if err != nil {
				return err
			}
			logger.Info("batch scored", "rows", n, "input", input)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of records with a header row")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "where to write predictions")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
