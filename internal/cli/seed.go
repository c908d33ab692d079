package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thebtf/dreamlog/internal/seed"
)

// NewSeedCommand creates the seed command and its subcommands.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate default reference content",
	}

	cmd.AddCommand(newSeedSymbolsCommand(rootOpts))
	cmd.AddCommand(newSeedHoroscopesCommand(rootOpts))

	return cmd
}

func newSeedSymbolsCommand(rootOpts *RootOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Seed the default dream symbol dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := rootOpts.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			symbols, err := seed.DreamSymbols(cmd.Context(), reg.DreamSymbols, nil, seed.Options{Overwrite: overwrite})
			if err != nil {
				return failed("seed dream symbols", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d dream symbols stored\n", len(symbols))
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "delete existing symbols before seeding")
	return cmd
}

func newSeedHoroscopesCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		userID    int64
		date      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "horoscopes",
		Short: "Seed one placeholder reading per zodiac sign for a user and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return NewExitError(ExitCommandError, "--user must be a positive id")
			}
			if date != "" {
				if _, err := time.Parse(seed.ReadingDateLayout, date); err != nil {
					return NewExitError(ExitCommandError, fmt.Sprintf("invalid --date %q: want YYYY-MM-DD", date))
				}
			}

			reg, err := rootOpts.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			readings, err := seed.HoroscopePlaceholders(cmd.Context(), reg.Horoscopes, userID, nil, seed.HoroscopeOptions{
				ReadingDate: date,
				Options:     seed.Options{Overwrite: overwrite},
			})
			if err != nil {
				return failed("seed horoscopes", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d horoscope readings stored for user %d\n", len(readings), userID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", rootOpts.cfg.DefaultUserID, "user id owning the readings")
	cmd.Flags().StringVar(&date, "date", "", "reading date (YYYY-MM-DD, default today in UTC)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the user's readings for the date")
	return cmd
}
