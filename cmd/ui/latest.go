package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobrec/internal/client"
)

const defaultLimit = 10

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest job recommendations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger()
		defer log.Sync()

		limit, _ := cmd.Flags().GetInt("limit")

		latest, err := newClient().LatestJobs(cmd.Context())
		if err != nil {
			log.Error("fetching jobs failed", zap.Error(err))
			return err
		}

		renderLatest(cmd.OutOrStdout(), latest, limit)
		return nil
	},
}

func init() {
	latestCmd.Flags().IntP("limit", "n", defaultLimit, "maximum number of jobs to show")

	rootCmd.AddCommand(latestCmd)
}

// renderLatest prints up to limit jobs. A non-positive limit shows all.
func renderLatest(w io.Writer, latest *client.Latest, limit int) {
	if len(latest.Jobs) == 0 {
		fmt.Fprintln(w, "No latest jobs available.")
		return
	}

	fmt.Fprintf(w, "Showing latest %d jobs received from backend\n\n", len(latest.Jobs))

	jobs := latest.Jobs
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	for _, job := range jobs {
		fmt.Fprintf(w, "### %s\n", job.Title.OrDefault("N/A"))
		fmt.Fprintf(w, "Company:  %s\n", job.Company.OrDefault("Unknown"))
		fmt.Fprintf(w, "Location: %s\n", job.Location.OrDefault("N/A"))
		if job.URL.Valid {
			fmt.Fprintf(w, "Apply:    %s\n", job.URL.String)
		}
		fmt.Fprintln(w, "---")
	}
}
