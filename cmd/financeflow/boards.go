package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
	"github.com/Thys1a/WebAccounting/internal/ledger"
)

func boardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards and allocations",
	}

	cmd.AddCommand(boardListCmd())
	cmd.AddCommand(boardAddCmd())
	cmd.AddCommand(boardSettleCmd())
	cmd.AddCommand(boardDeleteCmd())

	return cmd
}

func boardListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards with their derived balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user := viper.GetString("user")
			boards, err := store.Boards(ctx, user)
			if err != nil {
				return err
			}
			txns, err := store.Transactions(ctx, user)
			if err != nil {
				return err
			}

			cmd.Println(cli.TitleStyle.Render("Boards"))
			for _, b := range boards {
				balance := ledger.Balance(txns, b.ID)
				linked := ""
				if b.HasParent() {
					linked = cli.SubtleStyle.Render(" (child)")
				}
				cmd.Printf("%-24s %12s  %s%s  %s\n",
					b.Name,
					cli.FormatBalance(balance),
					cli.FormatStatus(b.Status),
					linked,
					cli.SubtleStyle.Render(b.ID))
			}
			return nil
		},
	}
	return cmd
}

func boardAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a board, optionally funded from a parent board",
		Long: `Create a board. With --parent and --allocate, the new board is funded from
the parent in the same atomic batch: the parent is debited and the child
credited by the same amount, recorded as a linked transfer pair.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user := viper.GetString("user")

			categoryArg, _ := cmd.Flags().GetString("category")
			parentArg, _ := cmd.Flags().GetString("parent")
			allocateArg, _ := cmd.Flags().GetString("allocate")

			var categoryID string
			if categoryArg == "" {
				categoryID, err = defaultCategoryID(ctx, store)
				if err != nil {
					return err
				}
			} else {
				categories, catErr := store.Categories(ctx, user)
				if catErr != nil {
					return catErr
				}
				cat, catErr := categoryByName(categories, categoryArg)
				if catErr != nil {
					return catErr
				}
				categoryID = cat.ID
			}

			req := ledger.AllocationRequest{
				Name:       args[0],
				CategoryID: categoryID,
			}

			if parentArg != "" {
				boards, boardErr := store.Boards(ctx, user)
				if boardErr != nil {
					return boardErr
				}
				parent, boardErr := boardByName(boards, parentArg)
				if boardErr != nil {
					return boardErr
				}
				req.ParentID = parent.ID
			}

			if allocateArg != "" {
				amount, amtErr := decimal.NewFromString(allocateArg)
				if amtErr != nil {
					return fmt.Errorf("invalid allocation amount %q: %w", allocateArg, amtErr)
				}
				req.Amount = amount
			}

			board, err := led.CreateBoard(ctx, req)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Created board %q", board.Name)
			if board.HasParent() && req.Amount.IsPositive() {
				msg = fmt.Sprintf("Created board %q funded with %s", board.Name, req.Amount.StringFixed(2))
			}
			cmd.Println(cli.SuccessStyle.Render(msg), cli.SubtleStyle.Render(board.ID))
			return nil
		},
	}

	cmd.Flags().String("category", "", "category for the new board (default: the default category)")
	cmd.Flags().String("parent", "", "parent board to allocate funds from")
	cmd.Flags().String("allocate", "", "amount to allocate from the parent")

	return cmd
}

func boardSettleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <board>",
		Short: "Close a child board, reconciling its balance with its parent",
		Long: `Settle a child board. A surplus flows back to the parent, a deficit is
covered by the parent, and the board is closed, all in one atomic batch.
After settlement the board's balance is exactly zero and it accepts no
further transactions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			boards, err := store.Boards(ctx, viper.GetString("user"))
			if err != nil {
				return err
			}
			board, err := boardByName(boards, args[0])
			if err != nil {
				return err
			}

			result, err := led.SettleBoard(ctx, board.ID)
			if err != nil {
				return err
			}

			switch {
			case result.Balance.IsPositive():
				cmd.Println(cli.SuccessStyle.Render(
					fmt.Sprintf("Settled %q: returned %s to parent", board.Name, result.Balance.StringFixed(2))))
			case result.Balance.IsNegative():
				cmd.Println(cli.WarningStyle.Render(
					fmt.Sprintf("Settled %q: parent covered %s", board.Name, result.Balance.Abs().StringFixed(2))))
			default:
				cmd.Println(cli.SuccessStyle.Render(
					fmt.Sprintf("Settled %q: already balanced", board.Name)))
			}
			return nil
		},
	}
}

func boardDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("board deletion is permanent; rerun with --force")
			}

			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			boards, err := store.Boards(ctx, viper.GetString("user"))
			if err != nil {
				return err
			}
			board, err := boardByName(boards, args[0])
			if err != nil {
				return err
			}

			if err := led.DeleteBoard(ctx, board.ID); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted board %q", board.Name)))
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "confirm permanent deletion")
	return cmd
}
