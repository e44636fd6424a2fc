package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/app"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Start drilling scenarios in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDrill(cmd, true)
	},
}

func init() {
	filterFlags(drillCmd)
}

// runDrill launches the TUI. startDrill skips the home menu.
func runDrill(cmd *cobra.Command, startDrill bool) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	e, err := setup(cmd, setupOpts{quietLogs: true})
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.svc.Catalog().CheckFilter(filter); err != nil {
		return err
	}

	return app.Run(app.Options{
		Service:       e.svc,
		Events:        e.store.EventRepo(),
		Filter:        filter,
		AnswerTimeout: e.cfg.Drill.AnswerTimeout,
		StartDrill:    startDrill,
	})
}
