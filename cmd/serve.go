package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the drill loop as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer e.Close()

		return mcpserver.New(e.svc, e.logger, buildVersion()).ServeStdio()
	},
}
