package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/events"
	"github.com/matieusz/onlyyes/internal/radio"
	"github.com/matieusz/onlyyes/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the station in real-time",
	Long: `Watch for station changes and print them as they happen.

Events tracked:
  - Track changes (new song started)
  - Queue changes (upcoming song announced)
  - Pause/Resume
  - Volume changes
  - Live-update connection status`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	client := newClient()

	storePath, err := radio.DefaultStorePath()
	if err != nil {
		return fmt.Errorf("resolving state path: %w", err)
	}

	sync := radio.NewSynchronizer(client, radio.NewStore(storePath),
		radio.WithLogger(logger),
		radio.WithHistoryLimit(cfg.Radio.HistoryLimit),
	)
	defer sync.Close()

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	showRecent(ctx, client)

	watcher := tail.NewWatcher(sync)
	defer watcher.Stop()

	stream := events.New(cfg.Server.BaseURL+"/api/radio/events", sync.ApplyEvent,
		events.WithLogger(logger),
		events.WithStateFunc(sync.SetConnected),
	)
	stream.Connect()
	defer stream.Close()

	sync.Initialize(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Println(formatter.Format(event))
		}
	}
}

// showRecent prints the last few plays so the feed starts with context.
func showRecent(ctx context.Context, client *api.Client) {
	songs, err := client.RecentSongs(ctx, 5)
	if err != nil || len(songs) == 0 {
		return
	}

	// Oldest first, so the newest play sits right above the live feed.
	for i := len(songs) - 1; i >= 0; i-- {
		prefix := ""
		if !tailNoEmoji {
			prefix = "⏪ "
		}
		fmt.Printf("%s%s\n", prefix, songLine(songs[i]))
	}
}
