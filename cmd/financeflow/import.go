package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/cli"
	"github.com/Thys1a/WebAccounting/internal/common"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an interchange file as a new board",
		Long: `Import a previously exported file. A new parentless, active board is
created and every parseable row lands on it in one atomic batch; rows with
non-numeric amounts are skipped, not fatal. Existing boards and
transactions are never touched.`,
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

			f, err := os.Open(args[0]) // #nosec G304 -- user-chosen import path
			if err != nil {
				return common.NewUserError(fmt.Sprintf("could not open import file %s", args[0]), err)
			}
			defer func() { _ = f.Close() }()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat import file: %w", err)
			}

			bar := progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionShowBytes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing..."),
				progressbar.OptionClearOnFinish(),
			)

			reader := progressbar.NewReader(f, bar)
			result, err := led.Import(ctx, &reader, categoryID)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Imported %q: %d transactions", result.Board.Name, result.Imported)))
			if result.Skipped > 0 {
				cmd.Println(cli.WarningStyle.Render(
					fmt.Sprintf("Skipped %d rows with unparsable amounts", result.Skipped)))
			}
			return nil
		},
	}

	cmd.Flags().String("category", "", "category for the imported board (default: the default category)")
	return cmd
}
