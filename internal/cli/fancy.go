package cli

import (
	"fmt"
	"strings"

	"github.com/devdeck-labs/devdeck/internal/fancytext"
	"github.com/spf13/cobra"
)

var (
	fancyStyle string
	fancyCopy  bool
)

func init() {
	fancyCmd.Flags().StringVarP(&fancyStyle, "style", "s", "", "Only print this style")
	fancyCmd.Flags().BoolVar(&fancyCopy, "copy", false, "Copy the styled text to the clipboard (requires --style)")
	rootCmd.AddCommand(fancyCmd)
}

var fancyCmd = &cobra.Command{
	Use:   "fancy <text>",
	Short: "Restyle text with Unicode letterforms",
	Long: `Print text in every Unicode style (bold, script, fraktur, circled, zalgo
and more), or print and copy a single style.

Styles: ` + strings.Join(fancytext.Names(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		if fancyStyle == "" {
			if fancyCopy {
				return fmt.Errorf("--copy requires --style")
			}
			w := newTable(cmd)
			for _, s := range fancytext.Styles {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Transform(text))
			}
			return w.Flush()
		}

		style, ok := fancytext.Lookup(fancyStyle)
		if !ok {
			return fmt.Errorf("unknown style %q (want one of: %s)", fancyStyle, strings.Join(fancytext.Names(), ", "))
		}
		styled := style.Transform(text)
		if !fancyCopy {
			fmt.Fprintln(out, styled)
			return nil
		}
		if err := newClipboard().WriteText(styled); err != nil {
			return fmt.Errorf("writing to the clipboard: %w", err)
		}
		fmt.Fprintln(out, fancytext.CopyMessage(style.Name))
		return nil
	},
}
