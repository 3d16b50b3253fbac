package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
	"github.com/Thys1a/WebAccounting/internal/ledger"
	"github.com/Thys1a/WebAccounting/internal/service"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <board>",
		Short: "Watch a board's balance live",
		Long: `Subscribe to the transaction collection and re-render the board's derived
balance on every committed batch. The balance is recomputed from each full
snapshot; no cached aggregate is ever shown. Interrupt to stop.`,
		Args: cobra.ExactArgs(1),
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
			cmd.Printf("%s  %s\n", board.Name, cli.FormatBalance(ledger.Balance(txns, board.ID)))

			snapshots, cancel := store.Subscribe(ctx, user, service.Transactions)
			defer cancel()

			for {
				select {
				case <-ctx.Done():
					return nil
				case snap, ok := <-snapshots:
					if !ok {
						return nil
					}
					cmd.Printf("%s  %s\n", board.Name,
						cli.FormatBalance(ledger.Balance(snap.Transactions, board.ID)))
				}
			}
		},
	}
}
