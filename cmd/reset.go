package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a fresh session and prune old ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, setupOpts{quietLogs: true})
		if err != nil {
			return err
		}
		defer e.Close()

		prev := e.svc.Session().ID
		if err := e.svc.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Started session %s (previous: %s, keeping the last %d)\n",
			e.svc.Session().ID, prev, e.cfg.Drill.KeepSessions)
		return nil
	},
}
