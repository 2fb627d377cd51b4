package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/devdeck-labs/devdeck/internal/standup"
	"github.com/spf13/cobra"
)

var (
	gmYesterday string
	gmToday     string
	gmRerolls   int
	gmCopy      bool
	gmRaw       bool
	gmStyle     string
	gmWidth     int
)

func init() {
	gmCmd.Flags().StringVar(&gmYesterday, "yesterday", "", "What you did yesterday")
	gmCmd.Flags().StringVar(&gmToday, "today", "", "What you plan to do today")
	gmCmd.Flags().IntVar(&gmRerolls, "reroll", 0, "Pick a different greeting this many times")
	gmCmd.Flags().BoolVar(&gmCopy, "copy", false, "Copy the note to the clipboard")
	gmCmd.Flags().BoolVar(&gmRaw, "raw", false, "Print the note without markdown rendering")
	gmCmd.Flags().StringVar(&gmStyle, "style", "", "Markdown style (dark, light, notty); detected when empty")
	gmCmd.Flags().IntVar(&gmWidth, "width", 80, "Wrap the preview at this width")
	rootCmd.AddCommand(gmCmd)
}

var gmCmd = &cobra.Command{
	Use:   "gm",
	Short: "Compose a good-morning standup note",
	Long: `Compose a standup note with a random greeting followed by what you did
yesterday and what you plan today. Without --yesterday or --today the
questions are asked interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers := standup.Answers{Yesterday: gmYesterday, Today: gmToday}
		if !cmd.Flags().Changed("yesterday") && !cmd.Flags().Changed("today") {
			var err error
			answers, err = standup.Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}
		if standup.Pristine(answers.Yesterday, answers.Today) {
			return errors.New("nothing to post: both yesterday and today are empty")
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		now := time.Now()
		if day, ok, err := standup.LastComposed(a.store); err == nil && ok && day == now.Format(standup.DateLayout) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: you already composed a note today.")
		}

		composer := standup.NewComposer(nil)
		for i := 0; i < gmRerolls; i++ {
			composer.Reroll()
		}
		note := composer.Compose(answers.Yesterday, answers.Today)

		out := cmd.OutOrStdout()
		if gmRaw {
			fmt.Fprintln(out, note)
		} else {
			rendered, err := standup.Render(note, gmWidth, gmStyle)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}

		if !gmCopy {
			return nil
		}
		if err := newClipboard().WriteText(note); err != nil {
			return fmt.Errorf("writing to the clipboard: %w", err)
		}
		if err := standup.RecordComposed(a.store, now); err != nil {
			return err
		}
		fmt.Fprintln(out, "Copied note to clipboard!")
		return nil
	},
}
