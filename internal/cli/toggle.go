package cli

import (
	"fmt"
	"strings"

	"github.com/devdeck-labs/devdeck/internal/toggle"
	"github.com/spf13/cobra"
)

func init() {
	toggleCmd.AddCommand(toggleListCmd)
	toggleCmd.AddCommand(toggleFlipCmd)
	toggleCmd.AddCommand(toggleSetCmd)
	rootCmd.AddCommand(toggleCmd)
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Show and change feature toggles",
}

var toggleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every toggle with its value",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		state, err := toggle.All(a.store)
		if err != nil {
			return err
		}
		w := newTable(cmd)
		fmt.Fprintln(w, "TOGGLE\tVALUE\tDESCRIPTION")
		for _, n := range toggle.Names() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", n, onOff(state[n]), n.Description())
		}
		return w.Flush()
	},
}

var toggleFlipCmd = &cobra.Command{
	Use:   "flip <toggle>",
	Short: "Invert a toggle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := toggle.Parse(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		v, err := toggle.Flip(a.store, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", n, onOff(v))
		return nil
	},
}

var toggleSetCmd = &cobra.Command{
	Use:   "set <toggle> <on|off>",
	Short: "Turn a toggle on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := toggle.Parse(args[0])
		if err != nil {
			return err
		}
		v, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.close()

		if err := toggle.Set(a.store, n, v); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", n, onOff(v))
		return nil
	},
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (want on or off)", s)
}
