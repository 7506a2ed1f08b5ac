// Command upload-event validates an event's index.json and booths.json and
// uploads them to the configured bucket.  The folder subcommand mirrors a
// local directory into the bucket.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/booth-data/internal/artifact"
	"github.com/iliyamo/booth-data/internal/config"
	"github.com/iliyamo/booth-data/internal/database"
	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/queue"
	qp "github.com/iliyamo/booth-data/internal/service"
	"github.com/iliyamo/booth-data/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:           "upload-event",
	Short:         "Upload an event's artifacts to object storage",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, _ := cmd.Flags().GetString("eventId")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		l := layout.New(dataDir)

		// Nothing is sent unless both files parse.
		if _, err := artifact.Check(l, eventID); err != nil {
			return err
		}

		ctx := cmd.Context()
		up, err := newUploader(ctx)
		if err != nil {
			return err
		}
		pub := &artifact.Publisher{Layout: l, Uploader: up}

		if db, repo := database.OpenLedger(ctx, config.LoadDatabaseConfig()); repo != nil {
			defer db.Close()
			pub.Ledger = repo
		}
		if broker := config.LoadBrokerConfig(); broker.Enabled() {
			pub.Notify = func(ctx context.Context, ev queue.ArtifactUploadedEvent) error {
				return qp.PublishArtifactUploaded(ctx, broker.URL, ev)
			}
		}

		_, err = pub.Publish(ctx, eventID)
		return err
	},
}

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Mirror a local directory into the bucket",
	Long: `Walks --dir depth-first and writes every file under --prefix.
Runs as a dry run unless --dry-run=false is given; files that fail are
reported and skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		prefix, _ := cmd.Flags().GetString("prefix")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		up, err := newUploader(cmd.Context())
		if err != nil {
			return err
		}
		report, err := up.UploadFolder(cmd.Context(), dir, prefix, storage.FolderOptions{DryRun: dryRun})
		if err != nil {
			return err
		}
		verb := "uploaded"
		if report.DryRun {
			verb = "would upload"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d files, %d failed\n", verb, len(report.Uploaded), len(report.Failed))
		return nil
	},
}

func newUploader(ctx context.Context) (*storage.Uploader, error) {
	cfg := config.LoadStorageConfig()
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("storage: bucket=%s region=%s key=%s", cfg.Bucket, cfg.Region, cfg.Redacted())
	return storage.NewUploader(cfg, store, nil), nil
}

func main() {
	if err := config.LoadDotEnv(config.DotEnvFiles...); err != nil {
		log.Printf("config: %v", err)
	}
	rootCmd.Flags().String("eventId", "", "event directory under data/events")
	rootCmd.Flags().String("data-dir", os.Getenv("DATA_DIR"), "root of the local event tree (default data)")
	folderCmd.Flags().String("dir", "", "local directory to mirror")
	folderCmd.Flags().String("prefix", "", "key prefix inside the bucket")
	folderCmd.Flags().Bool("dry-run", true, "list the keys without writing them")
	_ = folderCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(folderCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
