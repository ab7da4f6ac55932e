package main

import (
	"os"

	"github.com/sivaram/calc-admin/internal/export"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [calculation-id]",
	Short: "Write a calculation with its formulars and nodes as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		tree, err := export.Build(cmd.Context(), c.Calculations, c.Formulars, args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, tree); err != nil {
			return err
		}
		logr.Infof("Exported calculation %s with %d formulars", tree.ID, len(tree.Formulars))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")
}
