package cli

import (
	"fmt"
	"time"

	"github.com/devdeck-labs/devdeck/internal/discord"
	"github.com/spf13/cobra"
)

var (
	discordDate   string
	discordTime   string
	discordFormat string
	discordCopy   bool
)

func init() {
	discordCmd.Flags().StringVar(&discordDate, "date", "", "Date as yyyy-mm-dd (default today)")
	discordCmd.Flags().StringVar(&discordTime, "time", "", "Time as HH:mm (default now)")
	discordCmd.Flags().StringVarP(&discordFormat, "format", "f", "", "Only print this format (t, T, R, D, f, F)")
	discordCmd.Flags().BoolVar(&discordCopy, "copy", false, "Copy the timestamp to the clipboard (requires --format)")
	rootCmd.AddCommand(discordCmd)
}

var discordCmd = &cobra.Command{
	Use:   "discord",
	Short: "Build Discord timestamp markup",
	Long: `Preview a moment in every Discord timestamp format, or print and copy
the markup for one format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		moment := discord.Now()
		if discordDate != "" || discordTime != "" {
			date, clock := discordDate, discordTime
			if date == "" {
				date = moment.Format("2006-01-02")
			}
			if clock == "" {
				clock = moment.Format("15:04")
			}
			var err error
			moment, err = discord.ParseDateTime(date, clock, time.Local)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if discordFormat == "" {
			if discordCopy {
				return fmt.Errorf("--copy requires --format")
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "CODE\tFORMAT\tPREVIEW\tMARKUP")
			for _, f := range discord.Formats {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Code, f.Label, f.Preview(moment, now), f.Markup(moment))
			}
			return w.Flush()
		}

		f, ok := discord.Lookup(discordFormat)
		if !ok {
			return fmt.Errorf("unknown format %q (want t, T, R, D, f or F)", discordFormat)
		}
		markup := f.Markup(moment)
		if !discordCopy {
			fmt.Fprintln(out, markup)
			return nil
		}
		if err := newClipboard().WriteText(markup); err != nil {
			return fmt.Errorf("writing to the clipboard: %w", err)
		}
		fmt.Fprintln(out, discord.CopyMessage(markup))
		return nil
	},
}
