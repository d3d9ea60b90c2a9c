package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "sheetmap",
		Short: "Decode spreadsheet rows into records",
		Long: `sheetmap reads xlsx and csv workbooks, matches each page header against the
schemas of a configuration document (msio.json) and prints every row as a
JSON line.

Every flag can also be set through the environment with the SHEETMAP_ prefix,
e.g. SHEETMAP_CONFIG_DIR=/etc/sheetmap, or in a settings file.`,
		Version:      version,
		SilenceUsage: true,
	}
	bindPersistentFlags(root, v)

	root.AddCommand(newDecodeCmd(v), newSchemasCmd(v))
	return root
}
