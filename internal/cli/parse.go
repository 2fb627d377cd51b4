package cli

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/clipparse"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Show what the clipboard watcher would recognize in text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := clipparse.Parse(args[0])
		if ref == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No match.")
			return nil
		}
		w := newTable(cmd)
		fmt.Fprintf(w, "Type\t%s\n", ref.Type)
		fmt.Fprintf(w, "ID\t%s\n", ref.ID)
		fmt.Fprintf(w, "URL\t%s\n", ref.URL)
		return w.Flush()
	},
}
