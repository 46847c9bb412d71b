// Package cli defines the cobra command tree. Commands parse arguments and
// flags, then delegate to the CLI adapters from the wire package.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/wire"
)

// CategoryCmd returns the category command
func CategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage channel categories",
		Long:  "Create, list, and manage the categories that group catalog channels.",
	}

	cmd.AddCommand(categoryCreateCmd())
	cmd.AddCommand(categoryListCmd())
	cmd.AddCommand(categoryUpdateCmd())
	cmd.AddCommand(categoryDeleteCmd())

	return cmd
}

func categoryCreateCmd() *cobra.Command {
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().CreateCategory(cmd.Context(), args[0], sortOrder)
		},
	}
	cmd.Flags().IntVar(&sortOrder, "order", 0, "Sort order within equally ranked categories")

	return cmd
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in patch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().ListCategories(cmd.Context())
		},
	}
}

func categoryUpdateCmd() *cobra.Command {
	var name string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "update [category-id]",
		Short: "Update a category's name and/or sort order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var namePtr *string
			var orderPtr *int
			if cmd.Flags().Changed("name") {
				namePtr = &name
			}
			if cmd.Flags().Changed("order") {
				orderPtr = &sortOrder
			}
			return wire.CatalogAdapter().UpdateCategory(cmd.Context(), args[0], namePtr, orderPtr)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New category name")
	cmd.Flags().IntVar(&sortOrder, "order", 0, "New sort order")

	return cmd
}

func categoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [category-id]",
		Short: "Delete a category (its channels become uncategorized)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().DeleteCategory(cmd.Context(), args[0])
		},
	}
}
