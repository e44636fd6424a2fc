package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the drillq and built-in catalog versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Builtin()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "drillq", buildVersion())
		fmt.Fprintln(out, "catalog", cat.Version(), fmt.Sprintf("(%d scenarios)", cat.Len()))
		return nil
	},
}

// buildVersion falls back to the module version recorded by go install.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return version
}
