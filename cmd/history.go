package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type historyEntry struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Output     string     `json:"output"`
	Status     string     `json:"status"`
	MaxLeet    int        `json:"max_leet"`
	Workers    int        `json:"workers"`
	BaseWords  int        `json:"base_words"`
	Lines      int64      `json:"lines"`
	Bytes      int64      `json:"bytes"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")
		outputJSON, _ := cmd.Flags().GetBool("json")

		s, err := openHistory()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer s.Close()

		runs, err := s.ListRuns(limit, status)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		entries := make([]historyEntry, 0, len(runs))
		for _, r := range runs {
			entries = append(entries, historyEntry{
				ID:         r.ID,
				Label:      r.Label,
				Output:     r.Output,
				Status:     r.Status,
				MaxLeet:    r.MaxLeet,
				Workers:    r.Workers,
				BaseWords:  r.BaseWords,
				Lines:      r.Lines,
				Bytes:      r.Bytes,
				Error:      r.Error,
				StartedAt:  r.StartedAt,
				FinishedAt: r.FinishedAt,
			})
		}

		if outputJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tSTATUS\tPROFILE\tLEET\tLINES\tSIZE\tOUTPUT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				e.StartedAt.Local().Format("2006-01-02 15:04:05"),
				e.Status,
				e.Label,
				e.MaxLeet,
				humanize.Comma(e.Lines),
				humanize.Bytes(uint64(e.Bytes)),
				e.Output,
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Number of runs to show")
	historyCmd.Flags().String("status", "", "Filter by status (running, completed, failed)")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}
