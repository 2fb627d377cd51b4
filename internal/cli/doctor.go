package cli

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/config"
	"github.com/devdeck-labs/devdeck/internal/doctor"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and tighten permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the DevDeck installation",
	Long: `Check the ~/.devdeck directory, the settings file, the store document,
API credentials and clipboard support.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := doctor.Check(cmd.OutOrStdout(), doctor.Paths{
			Home:       config.Dir(),
			ConfigFile: config.FilePath(),
			StoreFile:  config.Current().StoreFile,
		}, doctorFix)

		if report.Fixed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFixed %s.\n", plural(report.Fixed, "problem"))
		}
		if remaining := report.Problems - report.Fixed; remaining > 0 {
			return fmt.Errorf("%s found", plural(remaining, "problem"))
		}
		return nil
	},
}
