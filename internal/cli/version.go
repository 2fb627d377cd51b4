package cli

import (
	"encoding/json"
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/devdeck-labs/devdeck/internal/config"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/release"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
	versionForce bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	versionCmd.Flags().BoolVar(&versionForce, "force", false, "With --check, ignore the cached result")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionCheck {
			return runVersionCheck(cmd)
		}
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		return nil
	},
}

// releaseBaseURL is swapped in tests.
var releaseBaseURL = ""

func runVersionCheck(cmd *cobra.Command) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	// The stored GitHub token raises the API rate limit; absence is fine.
	creds, _ := credentials.Load(a.store)
	checker := release.New(buildVersion,
		release.WithBaseURL(releaseBaseURL),
		release.WithToken(creds.GitHub),
	)
	res, err := checker.Check(cmd.Context(), config.Dir(), release.DefaultMaxAge, versionForce)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	out := cmd.OutOrStdout()
	if res.Available {
		fmt.Fprintf(out, "Update available: %s -> %s\n", res.Current, res.Latest)
		fmt.Fprintf(out, "    %s\n", res.URL)
		return nil
	}
	fmt.Fprintf(out, "%s %s is up to date (latest release %s).\n", branding.CLIName(), res.Current, res.Latest)
	return nil
}
