package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage board categories",
	}

	cmd.AddCommand(categoryListCmd())
	cmd.AddCommand(categoryAddCmd())
	cmd.AddCommand(categoryDeleteCmd())

	return cmd
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.Categories(ctx, viper.GetString("user"))
			if err != nil {
				return err
			}

			cmd.Println(cli.TitleStyle.Render("Categories"))
			for _, c := range categories {
				marker := " "
				if c.IsDefault {
					marker = cli.SuccessStyle.Render("*")
				}
				cmd.Printf("%s %s  %s\n", marker, c.Name, cli.SubtleStyle.Render(c.ID))
			}
			return nil
		},
	}
}

func categoryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := led.AddCategory(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created category %q", cat.Name)),
				cli.SubtleStyle.Render(cat.ID))
			return nil
		},
	}
}

func categoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category, moving its boards to the default category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.Categories(ctx, viper.GetString("user"))
			if err != nil {
				return err
			}
			cat, err := categoryByName(categories, args[0])
			if err != nil {
				return err
			}

			if err := led.DeleteCategory(ctx, cat.ID); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}
}
