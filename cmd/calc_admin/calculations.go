package main

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/model"
	"github.com/spf13/cobra"
)

var calculationCmd = &cobra.Command{
	Use:     "calculation",
	Aliases: []string{"calc"},
	Short:   "Manage calculations and their ordered formulars",
}

func init() {
	var name, before string

	list := &cobra.Command{
		Use:   "list",
		Short: "List calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calcs, err := apiClient().Calculations.List(cmd.Context())
			if err != nil {
				return err
			}
			printCalculations(cmd.OutOrStdout(), calcs)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a calculation and its formulars in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient().Calculations.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCalculations(cmd.OutOrStdout(), []model.Calculation{*c})
			printCalculationFormulars(cmd.OutOrStdout(), c.Formulars)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient().Calculations.Create(cmd.Context(), model.CreateCalculationInput{Name: name})
			if err != nil {
				return err
			}
			printCalculations(cmd.OutOrStdout(), []model.Calculation{*c})
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Calculation name (required)")
	create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename a calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient().Calculations.Update(cmd.Context(), args[0], model.UpdateCalculationInput{Name: &name})
			if err != nil {
				return err
			}
			printCalculations(cmd.OutOrStdout(), []model.Calculation{*c})
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name (required)")
	update.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a calculation (its formulars are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Calculations.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted calculation %s\n", args[0])
			return nil
		},
	}

	formulars := &cobra.Command{
		Use:   "formulars [id]",
		Short: "List a calculation's formulars in chain order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfs, err := apiClient().Calculations.Formulars(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCalculationFormulars(cmd.OutOrStdout(), cfs)
			return nil
		},
	}

	addFormular := &cobra.Command{
		Use:   "add-formular [calculation-id] [formular-id]",
		Short: "Link a formular into a calculation (appends unless --before is given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.AddFormularInput{FormularID: args[1]}
			if before != "" {
				in.NextID = &before
			}
			cf, err := apiClient().Calculations.AddFormular(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			printCalculationFormulars(cmd.OutOrStdout(), []model.CalculationFormular{*cf})
			return nil
		},
	}
	addFormular.Flags().StringVar(&before, "before", "", "Membership id to insert in front of")

	removeFormular := &cobra.Command{
		Use:   "remove-formular [calculation-id] [formular-id]",
		Short: "Unlink a formular from a calculation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Calculations.RemoveFormular(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed formular %s from calculation %s\n", args[1], args[0])
			return nil
		},
	}

	reorder := &cobra.Command{
		Use:   "reorder [calculation-id] [formular-id...]",
		Short: "Set the order of a calculation's formulars",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfs, err := apiClient().Calculations.ReorderFormulars(cmd.Context(), args[0], model.ReorderFormularsInput{FormularOrder: args[1:]})
			if err != nil {
				return err
			}
			printCalculationFormulars(cmd.OutOrStdout(), cfs)
			return nil
		},
	}

	calculationCmd.AddCommand(list, get, create, update, del, formulars, addFormular, removeFormular, reorder)
}
