package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/data/cleanup"
)

var retentionHours int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete recording videos past the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		retention := constants.VideoRetention
		if retentionHours > 0 {
			retention = time.Duration(retentionHours) * time.Hour
		}
		deleted := cleanup.Sweep(expandPath(dataDir), retention)
		fmt.Printf("Deleted %d old video files\n", deleted)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&retentionHours, "retention-hours", 0,
		"Retention window in hours (default 24)")
	rootCmd.AddCommand(cleanupCmd)
}
