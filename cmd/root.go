package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var verbose bool

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "aspect",
})

var rootCmd = &cobra.Command{
	Use:   "aspect",
	Short: "aspect ▣ - filter and crop image folders by resolution and aspect ratio",
	Long: "aspect ▣ walks a folder of images, keeps the ones that match a resolution " +
		"and aspect ratio filter, and writes them (optionally cropped) to an output folder.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Warn("interrupted, exiting", "signal", sig)
		os.Exit(exitInterrupted)
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitInterrupted is the conventional 128+SIGINT status.
const exitInterrupted = 130

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every file as it is dispatched and finished")
}
