package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate scenario catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios (optionally filtered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, cfg.Catalog.Path)
		if err != nil {
			return err
		}
		if err := cat.CheckFilter(filter); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Catalog %s\n", cat.Version())
		fmt.Fprintf(out, "Categories: %s\n\n", strings.Join(cat.Categories(), ", "))

		// Header.
		fmt.Fprintf(out, "%-26s  %-9s  %-12s  %-3s  %s\n",
			"ID", "Sport", "Level", "Pos", "Category")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		filtered := cat.Filter(filter)
		for _, sc := range filtered.Scenarios() {
			fmt.Fprintf(out, "%-26s  %-9s  %-12s  %-3s  %s\n",
				sc.ID, sc.Sport, sc.Level, sc.Position, sc.Category)
		}

		fmt.Fprintf(out, "\n%d scenarios\n", filtered.Len())
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s, %d scenarios)\n", args[0], cat.Version(), cat.Len())
		return nil
	},
}

func init() {
	filterFlags(catalogListCmd)

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
