package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		e, err := setup(cmd, setupOpts{quietLogs: true, readOnly: true})
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Limit: limit}
		if !all {
			opts.SessionID = e.svc.Session().ID
		}
		events, err := e.store.EventRepo().QueryAnswerEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No answers recorded.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-16s  %-26s  %-7s  %7s  %8s  %5s  %s\n",
			"Seq", "Time", "Scenario", "Outcome", "Resp", "Interval", "Ease", "Next due")
		fmt.Fprintln(out, strings.Repeat("─", 104))

		cat := e.svc.Catalog()
		retired := false
		for _, ev := range events {
			id := ev.ScenarioID
			if len(id) > 25 {
				id = id[:22] + "..."
			}
			if !cat.Has(ev.ScenarioID) {
				id = "~" + id
				retired = true
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-26s  %-7s  %6.1fs  %7.2fd  %5.2f  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				id,
				ev.Quality,
				float64(ev.ResponseTimeMs)/1000,
				ev.Interval,
				ev.Ease,
				ev.NextDue.Local().Format("2006-01-02 15:04"),
			)
		}

		fmt.Fprintf(out, "\n%d answers\n", len(events))
		if retired {
			fmt.Fprintln(out, "~ scenario no longer in the catalog")
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of answers to show")
	historyCmd.Flags().Bool("all", false, "Include answers from earlier sessions")
}
