package cli

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/devdeck-labs/devdeck/internal/clipboard"
	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/devdeck-labs/devdeck/internal/platform"
	"github.com/devdeck-labs/devdeck/internal/watcher"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyJSON bool
	historyYAML bool
	historyKind string
)

// Swappable in tests.
var (
	newClipboard = func() clipboard.Clipboard { return clipboard.System{} }
	openURL      = platform.OpenURL
)

func init() {
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Output in JSON format")
	historyListCmd.Flags().BoolVar(&historyYAML, "yaml", false, "Output in YAML format")
	historyCopyCmd.Flags().StringVar(&historyKind, "kind", "markdown", "What to copy (markdown, branch, pr)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyCopyCmd)
	historyCmd.AddCommand(historyOpenCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage captured pull requests and issues",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured items, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.history.Sorted()
		if err != nil {
			return err
		}

		switch {
		case historyJSON:
			if items == nil {
				items = []history.Item{}
			}
			return printJSON(cmd, items)
		case historyYAML:
			return printYAML(cmd, items)
		}

		if len(items) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No items captured yet. Copy a Linear issue or GitHub pull request link while '%s watch' runs.\n", branding.CLIName())
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tTYPE\tLABEL\tCAPTURED")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.ID, it.Type, it.Label, humanize.Time(it.Date))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", plural(len(items), "item"))
		return nil
	},
}

var historyCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy an item's markdown link, branch name or PR name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := watcher.ParseCopyKind(historyKind)
		if err != nil {
			return err
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		item, err := lookupItem(a, args[0])
		if err != nil {
			return err
		}
		text, err := watcher.Content(item, kind)
		if err != nil {
			return err
		}
		if err := newClipboard().WriteText(text); err != nil {
			return fmt.Errorf("writing to the clipboard: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), watcher.CopyMessage(item, kind))
		return nil
	},
}

var historyOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open an item's URL in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		item, err := lookupItem(a, args[0])
		if err != nil {
			return err
		}
		if err := openURL(item.URL); err != nil {
			return fmt.Errorf("opening %s: %w", item.URL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", item.URL)
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := lookupItem(a, args[0]); err != nil {
			return err
		}
		if err := a.history.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item from the history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.history.List()
		if err != nil {
			return err
		}
		if err := a.history.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", plural(len(items), "item"))
		return nil
	},
}

func lookupItem(a *app, id string) (history.Item, error) {
	item, ok, err := a.history.Get(id)
	if err != nil {
		return history.Item{}, err
	}
	if !ok {
		return history.Item{}, fmt.Errorf("no history item %q", id)
	}
	return item, nil
}
