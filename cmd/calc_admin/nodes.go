package main

import (
	"fmt"

	"github.com/sivaram/calc-admin/internal/model"
	"github.com/spf13/cobra"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Manage nodes",
}

func init() {
	var name, data string

	list := &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := apiClient().Nodes.List(cmd.Context())
			if err != nil {
				return err
			}
			printNodes(cmd.OutOrStdout(), nodes)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := apiClient().Nodes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printNodes(cmd.OutOrStdout(), []model.Node{*n})
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := apiClient().Nodes.Create(cmd.Context(), model.CreateNodeInput{Name: name, NodeData: data})
			if err != nil {
				return err
			}
			printNodes(cmd.OutOrStdout(), []model.Node{*n})
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Node name (required)")
	create.Flags().StringVar(&data, "data", "", "Node data")
	create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a node's name and/or data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in model.UpdateNodeInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("data") {
				in.NodeData = &data
			}
			if in.Name == nil && in.NodeData == nil {
				return fmt.Errorf("nothing to update: pass --name and/or --data")
			}
			n, err := apiClient().Nodes.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			printNodes(cmd.OutOrStdout(), []model.Node{*n})
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&data, "data", "", "New data")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a node and unlink it from every formular",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Nodes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted node %s\n", args[0])
			return nil
		},
	}

	nodeCmd.AddCommand(list, get, create, update, del)
}
