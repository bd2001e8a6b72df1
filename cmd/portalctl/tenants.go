package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/tenantportal/internal/tenant"
	"github.com/kiranshivaraju/tenantportal/internal/theme"
)

func newTenantsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Inspect tenant configurations",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "YAML overlay on the built-in tenants")

	load := func() (*tenant.Directory, error) {
		if file == "" {
			return tenant.BuiltinDirectory(), nil
		}
		return tenant.LoadFile(file)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRIMARY\tTEMPLATES")
			for _, id := range dir.IDs() {
				cfg, _ := dir.Lookup(id)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", cfg.TenantID, cfg.Name,
					cfg.Theme.Colors.Primary.S500, cfg.Customization.EnableCustomTemplates)
			}
			return tw.Flush()
		},
	}

	tokens := &cobra.Command{
		Use:   "tokens <tenant-id>",
		Short: "Print the theme stylesheet a tenant produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := load()
			if err != nil {
				return err
			}
			cfg, found := dir.Lookup(args[0])
			if !found {
				return fmt.Errorf("unknown tenant %q", args[0])
			}
			store := theme.NewTokenStore()
			theme.NewApplicator(store).Apply(cfg)
			fmt.Fprint(cmd.OutOrStdout(), store.CSS())
			return nil
		},
	}

	cmd.AddCommand(list, tokens)
	return cmd
}
