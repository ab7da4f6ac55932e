package main

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/model"
	"github.com/spf13/cobra"
)

var formularCmd = &cobra.Command{
	Use:   "formular",
	Short: "Manage formulars and their ordered nodes",
}

func init() {
	var name, before string

	list := &cobra.Command{
		Use:   "list",
		Short: "List formulars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formulars, err := apiClient().Formulars.List(cmd.Context())
			if err != nil {
				return err
			}
			printFormulars(cmd.OutOrStdout(), formulars)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a formular and its nodes in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := apiClient().Formulars.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printFormulars(cmd.OutOrStdout(), []model.Formular{*f})
			printFormularNodes(cmd.OutOrStdout(), f.Nodes)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a formular",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := apiClient().Formulars.Create(cmd.Context(), model.CreateFormularInput{Name: name})
			if err != nil {
				return err
			}
			printFormulars(cmd.OutOrStdout(), []model.Formular{*f})
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Formular name (required)")
	create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename a formular",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := apiClient().Formulars.Update(cmd.Context(), args[0], model.UpdateFormularInput{Name: &name})
			if err != nil {
				return err
			}
			printFormulars(cmd.OutOrStdout(), []model.Formular{*f})
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name (required)")
	update.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a formular and unlink it from every calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Formulars.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted formular %s\n", args[0])
			return nil
		},
	}

	nodes := &cobra.Command{
		Use:   "nodes [id]",
		Short: "List a formular's nodes in chain order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fns, err := apiClient().Formulars.Nodes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printFormularNodes(cmd.OutOrStdout(), fns)
			return nil
		},
	}

	addNode := &cobra.Command{
		Use:   "add-node [formular-id] [node-id]",
		Short: "Link a node into a formular (appends unless --before is given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.AddNodeInput{NodeID: args[1]}
			if before != "" {
				in.NextID = &before
			}
			fn, err := apiClient().Formulars.AddNode(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			printFormularNodes(cmd.OutOrStdout(), []model.FormularNode{*fn})
			return nil
		},
	}
	addNode.Flags().StringVar(&before, "before", "", "Membership id to insert in front of")

	removeNode := &cobra.Command{
		Use:   "remove-node [formular-id] [node-id]",
		Short: "Unlink a node from a formular",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Formulars.RemoveNode(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed node %s from formular %s\n", args[1], args[0])
			return nil
		},
	}

	reorder := &cobra.Command{
		Use:   "reorder [formular-id] [node-id...]",
		Short: "Set the order of a formular's nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fns, err := apiClient().Formulars.ReorderNodes(cmd.Context(), args[0], model.ReorderNodesInput{NodeOrder: args[1:]})
			if err != nil {
				return err
			}
			printFormularNodes(cmd.OutOrStdout(), fns)
			return nil
		},
	}

	formularCmd.AddCommand(list, get, create, update, del, nodes, addNode, removeNode, reorder)
}
