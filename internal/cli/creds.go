package cli

import (
	"fmt"
	"strings"

	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	credsCmd.AddCommand(credsSetCmd)
	credsCmd.AddCommand(credsShowCmd)
	credsCmd.AddCommand(credsCheckCmd)
	rootCmd.AddCommand(credsCmd)
}

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Manage GitHub and Linear API tokens",
	Long:  `Tokens are stored in ~/.devdeck/store.json, readable only by you.`,
}

var credsSetCmd = &cobra.Command{
	Use:       "set <github|linear> <token>",
	Short:     "Store an API token",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"github", "linear"},
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, token := strings.ToLower(args[0]), strings.TrimSpace(args[1])

		var save func(*store.Store, string) error
		switch provider {
		case "github":
			save = credentials.SaveGitHub
		case "linear":
			save = credentials.SaveLinear
		default:
			return fmt.Errorf("unknown provider %q (want github or linear)", args[0])
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		if err := save(a.store, token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s token %s\n", provider, credentials.Redact(token))
		return nil
	},
}

var credsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored tokens, redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		creds, err := credentials.Load(a.store)
		if err != nil {
			return err
		}
		w := newTable(cmd)
		fmt.Fprintln(w, "PROVIDER\tTOKEN")
		fmt.Fprintf(w, "github\t%s\n", orDash(credentials.Redact(creds.GitHub)))
		fmt.Fprintf(w, "linear\t%s\n", orDash(credentials.Redact(creds.Linear)))
		return w.Flush()
	},
}

var credsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail unless both tokens are set",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		creds, err := credentials.Load(a.store)
		if err != nil {
			return err
		}
		v := creds.Validate()
		if !v.Valid {
			return fmt.Errorf("%s token missing. Run '%s creds set'", strings.Join(v.Missing(), " and "), branding.CLIName())
		}
		fmt.Fprintln(cmd.OutOrStdout(), "GitHub and Linear tokens are set.")
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
