package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/sheetmap/v1/decoder"
)

func newSchemasCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the schemas of the configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), s, decoder.DefaultConfig(), func(ctx context.Context, svc services) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDEPTH\tCOLUMNS")
				for _, id := range svc.Registry.IDs(ctx) {
					sc, ok := svc.Registry.Resolve(ctx, id)
					if !ok {
						continue
					}
					fmt.Fprintf(w, "%s\t%d\t%s\n", id, sc.Depth, strings.Join(sc.LeafNames(true), ", "))
				}
				return w.Flush()
			})
		},
	}
}
