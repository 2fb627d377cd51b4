package cli

import (
	"fmt"
	"slices"

	"github.com/devdeck-labs/devdeck/internal/config"
	"github.com/spf13/cobra"
)

var configKeys = []string{
	config.KeyPollInterval,
	config.KeyCopiedDuration,
	config.KeyAlertDismiss,
	config.KeyAlertSwapDelay,
	config.KeyGitHubAPIURL,
	config.KeyLinearAPIURL,
	config.KeyHTTPTimeout,
	config.KeyStoreFile,
	config.KeyLogFile,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write DevDeck settings stored at ~/.devdeck/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !slices.Contains(configKeys, key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		if err := config.Current().Validate(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its resolved value",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := newTable(cmd)
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, key := range configKeys {
			fmt.Fprintf(w, "%s\t%s\n", key, config.Get(key))
		}
		return w.Flush()
	},
}
