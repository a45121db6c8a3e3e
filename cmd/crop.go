package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"aspect/internal/processor"
	"aspect/internal/tui"
)

var (
	cropFlags filterFlags
	cropPlain bool
)

var cropCmd = &cobra.Command{
	Use:   "crop [flags] <input> <output>",
	Short: "Filter images by resolution and ratio, cropping if asked, into an output folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		for _, dir := range []string{input, output} {
			if err := requireDir(dir); err != nil {
				return err
			}
		}

		settings, err := cropFlags.settings(cmd)
		if err != nil {
			return err
		}
		cfg, err := settings.Filter()
		if err != nil {
			return err
		}
		logger.Debug("filter", "config", cfg.String(), "jobs", settings.Jobs)

		updates := make(chan processor.ProgressUpdate, 64)
		uiDone := make(chan struct{})
		if cropPlain || verbose {
			go func() {
				tui.RunPlain(updates, os.Stderr)
				close(uiDone)
			}()
		} else {
			program := tea.NewProgram(tui.NewModel(updates))
			go func() {
				final, err := program.Run()
				if m, ok := final.(tui.Model); ok && m.Interrupted() {
					os.Exit(exitInterrupted)
				}
				if err != nil {
					logger.Warn("progress view unavailable", "err", err)
				}
				// keep the pipeline unblocked if the view stopped early
				for range updates {
				}
				close(uiDone)
			}()
		}

		var agg processor.Aggregator
		started := time.Now()
		runErr := processor.Run(context.Background(), input, processor.Options{
			OutputDir: output,
			Filter:    cfg,
			Codec:     processor.ImagingCodec{JPEGQuality: settings.JPEGQuality},
			Jobs:      settings.Jobs,
			Exclude:   settings.Exclude,
			Logger:    logger,
		}, &agg, updates)

		close(updates)
		<-uiDone
		if runErr != nil {
			return runErr
		}

		report := agg.Report()
		rows := []tui.SummaryRow{
			{Label: "Images saved", Value: fmt.Sprintf("%d", report.Succeeded)},
			{Label: "Images failed", Value: fmt.Sprintf("%d", len(report.Failures))},
			{Label: "Filter", Value: cfg.String()},
			{Label: "Elapsed", Value: time.Since(started).Round(time.Millisecond).String()},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		if failures := tui.RenderFailures(report.Failures); failures != "" {
			fmt.Fprintln(os.Stdout, failures)
		}

		outPath := output
		if abs, absErr := filepath.Abs(output); absErr == nil {
			outPath = abs
		}
		fmt.Fprintf(os.Stdout, "Images written to: %s\n", outPath)
		return nil
	},
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func init() {
	cropFlags.register(cropCmd.Flags())
	cropCmd.Flags().BoolVar(&cropPlain, "plain", false, "show a simple progress bar instead of the full-screen view")

	rootCmd.AddCommand(cropCmd)
}
