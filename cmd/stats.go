package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/spacedrep"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show drill statistics for the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		e, err := setup(cmd, setupOpts{quietLogs: true, readOnly: true})
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.svc.Catalog().CheckFilter(filter); err != nil {
			return err
		}

		st := e.svc.Stats(filter)
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		sess := e.svc.Session()
		fmt.Fprintf(out, "Session %s (started %s)\n\n", sess.ID, sess.CreatedAt.Local().Format("Jan 02, 2006 15:04"))
		fmt.Fprintf(out, "%-18s %d of %d\n", "Scenarios seen", st.ScenariosSeen, st.CatalogSize)
		fmt.Fprintf(out, "%-18s %d\n", "Total attempts", st.TotalAttempts)
		fmt.Fprintf(out, "%-18s %.0f%%\n", "Best rate", st.CorrectRate*100)
		outcomes := make([]string, 0, 4)
		for _, q := range spacedrep.AllQualities() {
			outcomes = append(outcomes, fmt.Sprintf("%d %s", st.Count(q), q))
		}
		fmt.Fprintf(out, "%-18s %s\n", "Outcomes", strings.Join(outcomes, ", "))
		fmt.Fprintf(out, "%-18s %d\n", "Due now", st.DueNow)
		if st.DueNow > 0 {
			fmt.Fprintf(out, "%-18s %.1f days\n", "Most overdue", st.MostOverdueDays)
		}
		fmt.Fprintf(out, "%-18s %d\n", "Never seen", st.Unseen)
		fmt.Fprintf(out, "%-18s %.2f\n", "Average ease", st.AverageEase)
		fmt.Fprintf(out, "%-18s %.2f days\n", "Average interval", st.AverageInterval)
		return nil
	},
}

func init() {
	filterFlags(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print stats as JSON")
}
