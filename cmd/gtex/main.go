// Package main provides the gtex command line interface for querying the
// GTEx portal.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/w-gao/gtex-go/internal/config"
	"github.com/w-gao/gtex-go/pkg/gtex"
)

var (
	cfg    *config.Config
	client *gtex.Client
)

var rootCmd = &cobra.Command{
	Use:           "gtex",
	Short:         "Query the GTEx portal for gene expression data",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		if cfg.Logging.Format == "json" {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}

		client, err = gtex.NewClient(cfg.ClientConfig())
		return err
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
