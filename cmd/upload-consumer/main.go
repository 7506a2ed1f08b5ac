// Command upload-consumer appends every artifact.uploaded notification to
// logs/upload.log.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/booth-data/internal/config"
	"github.com/iliyamo/booth-data/internal/queue"
)

var rootCmd = &cobra.Command{
	Use:           "upload-consumer",
	Short:         "Log artifact upload notifications",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logDir, _ := cmd.Flags().GetString("log-dir")
		broker := config.LoadBrokerConfig()
		if !broker.Enabled() {
			return errors.New("RABBITMQ_URL is not defined")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("upload-consumer: writing to %s", logDir)
		err := queue.StartUploadConsumer(ctx, broker.URL, logDir)
		if errors.Is(err, context.Canceled) {
			log.Printf("upload-consumer: stopped")
			return nil
		}
		return err
	},
}

func main() {
	if err := config.LoadDotEnv(config.DotEnvFiles...); err != nil {
		log.Printf("config: %v", err)
	}
	rootCmd.Flags().String("log-dir", "logs", "directory holding upload.log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
