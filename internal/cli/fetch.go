package cli

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/clipparse"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fetchJSON   bool
	fetchNoSave bool
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output in JSON format")
	fetchCmd.Flags().BoolVar(&fetchNoSave, "no-save", false, "Do not add the item to the history")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <link>",
	Short: "Fetch a Linear issue or GitHub pull request link into the history",
	Long: `Recognize a link the same way the clipboard watcher does, fetch its
title from Linear or GitHub and add it to the history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := clipparse.Parse(args[0])
		if ref == nil {
			return fmt.Errorf("no Linear issue or GitHub pull request found in %q", args[0])
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		creds, err := credentials.Load(a.store)
		if err != nil {
			return err
		}

		client := a.fetcher()
		var item history.Item
		if ref.Type == history.TypeLinear {
			item, err = client.FetchIssue(cmd.Context(), ref.ID, creds.Linear)
		} else {
			item, err = client.FetchPR(cmd.Context(), ref.URL, creds.GitHub)
		}
		if err != nil {
			return fmt.Errorf("fetching %s: %w", ref.ID, err)
		}
		a.logger.Debug("fetched", zap.String("id", item.ID), zap.String("type", string(item.Type)))

		if !fetchNoSave {
			added, err := a.history.Insert(item)
			if err != nil {
				return err
			}
			if !added {
				a.logger.Debug("already in history", zap.String("id", item.ID))
			}
		}

		if fetchJSON {
			return printJSON(cmd, item)
		}
		w := newTable(cmd)
		fmt.Fprintf(w, "ID\t%s\n", item.ID)
		fmt.Fprintf(w, "Label\t%s\n", item.Label)
		fmt.Fprintf(w, "Markdown\t%s\n", item.Markdown)
		if item.State != "" {
			fmt.Fprintf(w, "State\t%s\n", item.State)
		}
		if item.BranchName != "" {
			fmt.Fprintf(w, "Branch\t%s\n", item.BranchName)
			fmt.Fprintf(w, "PR name\t%s\n", item.PRName)
		}
		return w.Flush()
	},
}
