// Command convert-booths builds data/events/{eventId}/booths.json from the
// event's attendance, links and tags exports.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/booth-data/internal/config"
	"github.com/iliyamo/booth-data/internal/converter"
	"github.com/iliyamo/booth-data/internal/layout"
)

var rootCmd = &cobra.Command{
	Use:           "convert-booths",
	Short:         "Convert an event's TSV exports into booths.json",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, _ := cmd.Flags().GetString("eventId")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		summary, _ := cmd.Flags().GetBool("summary")

		res, _, err := converter.New(os.Stderr).Run(layout.New(dataDir), eventID)
		if err != nil {
			return err
		}
		if summary {
			converter.WriteSummary(cmd.OutOrStdout(), res)
		}
		return nil
	},
}

func main() {
	if err := config.LoadDotEnv(config.DotEnvFiles...); err != nil {
		log.Printf("config: %v", err)
	}
	rootCmd.Flags().String("eventId", "", "event directory under data/events")
	rootCmd.Flags().String("data-dir", os.Getenv("DATA_DIR"), "root of the local event tree (default data)")
	rootCmd.Flags().Bool("summary", false, "print a table of the converted booths")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
