package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	archiveURL string
)

var rootCmd = &cobra.Command{
	Use:   "tnattest",
	Short: "TRUF.NETWORK attestation payload codec",
	Long:  `tnattest decodes and encodes TRUF.NETWORK binary attestation payloads, serves them over gRPC, and archives decoded records.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&archiveURL, "archive-url", "", "archive database URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
