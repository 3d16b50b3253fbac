package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
	"github.com/Thys1a/WebAccounting/internal/ledger"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and manage transactions",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txEditCmd())
	cmd.AddCommand(txDeleteCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <board> <amount> <description>",
		Short: "Record an expense or income on a board",
		Long: `Record a normal transaction. Amounts are treated as expenses (negated)
unless --income is given or the amount already carries a sign.`,
		Args: cobra.ExactArgs(3),
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

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			income, _ := cmd.Flags().GetBool("income")
			signed := args[1][0] == '+' || args[1][0] == '-'
			if !signed {
				if income {
					amount = amount.Abs()
				} else {
					amount = amount.Abs().Neg()
				}
			}

			txn, err := led.AddTransaction(ctx, board.ID, amount, args[2])
			if err != nil {
				return err
			}

			cmd.Printf("%s %s on %q  %s\n",
				cli.SuccessStyle.Render("Recorded"),
				cli.FormatAmount(txn.Amount),
				board.Name,
				cli.SubtleStyle.Render(txn.ID))
			return nil
		},
	}

	cmd.Flags().Bool("income", false, "record the amount as income instead of an expense")
	return cmd
}

func txListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <board>",
		Short: "List a board's transactions and balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			board, err := boardByName(boards, args[0])
			if err != nil {
				return err
			}
			txns, err := store.Transactions(ctx, user)
			if err != nil {
				return err
			}

			cmd.Println(cli.TitleStyle.Render(board.Name), cli.FormatStatus(board.Status))
			for _, t := range txns {
				if t.BoardID != board.ID {
					continue
				}
				kind := ""
				if t.Type.IsTransfer() {
					kind = cli.SubtleStyle.Render(" [" + string(t.Type) + "]")
				}
				cmd.Printf("%s  %12s  %s%s  %s\n",
					t.Date.Format("2006-01-02"),
					cli.FormatAmount(t.Amount),
					t.Description,
					kind,
					cli.SubtleStyle.Render(t.ID))
			}
			cmd.Printf("\nBalance: %s\n", cli.FormatBalance(ledger.Balance(txns, board.ID)))
			return nil
		},
	}
}

func txEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <transaction-id> <amount> <description>",
		Short: "Edit a normal transaction",
		Long: `Edit the amount and description of a normal transaction. Transfer legs
created by allocations and settlements cannot be edited.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			if err := led.EditTransaction(ctx, args[0], amount, args[2]); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render("Updated transaction"), cli.SubtleStyle.Render(args[0]))
			return nil
		},
	}
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a normal transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := led.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render("Deleted transaction"), cli.SubtleStyle.Render(args[0]))
			return nil
		},
	}
}
