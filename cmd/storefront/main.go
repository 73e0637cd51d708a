package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

var (
	envFile string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Catalog storefront with a local overrides layer, cart and admin editor",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		if cfg, err = config.Load(files...); err != nil {
			return err
		}
		log = logger.New(logger.Options{
			Service:   "storefront",
			Env:       cfg.AppEnv,
			Level:     cfg.LogLevel,
			File:      cfg.LogFile,
			AddSource: cmd.Name() == "serve",
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd, catalogCmd, exportCmd, importCmd, imageCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
