package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <board>",
		Short: "Export a board's transactions to the interchange format",
		Long: `Export a board and its transactions as flat tabular text. Closed boards
remain exportable; the file can be re-imported as a fresh, parentless board.`,
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

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return led.Export(ctx, board.ID, cmd.OutOrStdout())
			}

			f, err := os.Create(output) // #nosec G304 -- user-chosen export path
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := led.Export(ctx, board.ID, f); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Exported %q to %s", board.Name, output)))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	return cmd
}
