package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sparkify/datalake/internal/config"
	"github.com/sparkify/datalake/internal/logs"
	"github.com/sparkify/datalake/internal/pipeline"
)

// CLI flags
var configPath string

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Sparkify data lake ETL",
	Long:  `Reads song metadata and activity logs from object storage and writes the star schema tables back as partitioned parquet`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.ReadLocalConfigFile(configPath)
		if err != nil {
			logrus.WithField("file", configPath).WithError(err).Error("Error reading config file")
			return err
		}

		logrus.SetLevel(logs.ConfigLogLevelToLevel(conf.LogLevel))

		ctx := context.Background()
		p, err := pipeline.New(ctx, conf)
		if err != nil {
			logrus.WithError(err).Error("Error initializing pipeline")
			return err
		}

		if err := p.Run(ctx); err != nil {
			logrus.WithField("runID", p.RunID).WithError(err).Error("Pipeline run failed")
			return err
		}

		logrus.WithField("runID", p.RunID).Info("Pipeline run complete")
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd)
	runCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the run configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
