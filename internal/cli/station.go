package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/browser"
)

var (
	streamURLCopy bool
	streamURLOpen bool
)

var listenersCmd = &cobra.Command{
	Use:   "listeners",
	Short: "Show who is tuned in",
	RunE:  runListeners,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show this week's shows",
	RunE:  runSchedule,
}

var streamURLCmd = &cobra.Command{
	Use:   "stream-url",
	Short: "Print the direct stream URL",
	Long:  `Prints the direct stream URL, for listening in an external player.`,
	RunE:  runStreamURL,
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the station website",
	RunE: func(cmd *cobra.Command, args []string) error {
		return browser.Open(cfg.Server.BaseURL)
	},
}

func init() {
	streamURLCmd.Flags().BoolVar(&streamURLCopy, "copy", false, "copy the URL to the clipboard")
	streamURLCmd.Flags().BoolVar(&streamURLOpen, "open", false, "open the URL in the default player")
	rootCmd.AddCommand(listenersCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(streamURLCmd)
	rootCmd.AddCommand(openCmd)
}

func runListeners(cmd *cobra.Command, args []string) error {
	listeners, err := newClient().ActiveListeners(cmd.Context())
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(listeners)
	}

	if len(listeners) == 0 {
		Minimal("Nobody tuned in right now")
		return nil
	}

	NormalF("%d listening:", len(listeners))
	for _, l := range listeners {
		name := l.Username
		if l.IsGuest || name == "" {
			name = "guest"
		}
		NormalF("  %s %s", StatusIcon(l.IsPlaying), name)
	}
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	schedules, err := newClient().Schedules(cmd.Context(), 0)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(schedules)
	}

	if len(schedules) == 0 {
		Minimal("No shows scheduled")
		return nil
	}

	t := NewTable("", "SHOW", "FROM", "TO")
	for _, s := range schedules {
		now := ""
		if s.IsNow {
			now = "▶"
		}
		t.Row(now, s.Name, s.StartTime, s.EndTime)
	}
	t.Flush()
	return nil
}

func runStreamURL(cmd *cobra.Command, args []string) error {
	url, err := newClient().StreamURL(cmd.Context())
	if err != nil {
		return err
	}

	if streamURLCopy {
		if err := clipboard.WriteAll(url); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}
	if streamURLOpen {
		if err := browser.Open(url); err != nil {
			return fmt.Errorf("opening stream: %w", err)
		}
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"stream_url": url})
	}
	Minimal(url)
	if streamURLCopy {
		fmt.Fprintln(os.Stderr, "Copied to clipboard")
	}
	return nil
}
