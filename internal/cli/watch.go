package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/notify"
	"github.com/devdeck-labs/devdeck/internal/panel"
	"github.com/devdeck-labs/devdeck/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var watchHeadless bool

func init() {
	watchCmd.Flags().BoolVar(&watchHeadless, "headless", false, "Run without the panel and print alerts to stdout")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard and open the panel",
	Long: `Poll the clipboard for Linear issue keys and GitHub pull request links,
fetch their titles and keep them in the history. The panel lists the history
and copies markdown links, branch names and PR names back to the clipboard.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	// The panel owns the terminal, so logs go to the log file.
	a, err := newApp(appOptions{logToFile: !watchHeadless})
	if err != nil {
		return err
	}
	defer a.close()

	notifier := notify.New(
		notify.WithDismissAfter(a.settings.AlertDismiss),
		notify.WithSwapDelay(a.settings.AlertSwapDelay),
		notify.WithLogger(a.logger.Named("notify")),
	)
	defer notifier.Close()

	clip := newClipboard()
	w := watcher.New(clip, a.history, a.fetcher(), credentials.NewSource(a.store),
		watcher.WithInterval(a.settings.PollInterval),
		watcher.WithCopiedDuration(a.settings.CopiedDuration),
		watcher.WithNotifier(notifier),
		watcher.WithLogger(a.logger.Named("watcher")),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("watching clipboard",
		zap.Duration("interval", a.settings.PollInterval),
		zap.String("store", a.settings.StoreFile),
		zap.Bool("headless", watchHeadless),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(ctx) })
	g.Go(func() error { return a.store.Watch(ctx) })

	if watchHeadless {
		alerts := notifier.Subscribe()
		g.Go(func() error { return printAlerts(ctx, cmd.OutOrStdout(), alerts) })
	} else {
		p := tea.NewProgram(panel.New(panel.Deps{
			Watcher:   w,
			History:   a.history,
			Store:     a.store,
			Alerts:    notifier,
			Clipboard: clip,
			Open:      openURL,
			Logger:    a.logger.Named("panel"),
		}), tea.WithAltScreen(), tea.WithContext(ctx))
		a.store.OnReload(func() { p.Send(panel.RefreshMsg{}) })

		g.Go(func() error {
			// Leaving the panel stops the watcher.
			defer cancel()
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			if err != nil {
				return fmt.Errorf("running panel: %w", err)
			}
			return nil
		})
	}

	err = g.Wait()
	a.logger.Info("stopped watching")
	return err
}

// printAlerts writes visible alerts as lines until ctx is done or the
// notifier closes.
func printAlerts(ctx context.Context, out io.Writer, alerts <-chan notify.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-alerts:
			if !ok {
				return nil
			}
			if ev.Visible {
				fmt.Fprintf(out, "[%s] %s\n", ev.Alert.Type, ev.Alert.Content)
			}
		}
	}
}
