package cli

import (
	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/tui"
)

var uiKiosk bool

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive radio player",
	Long: `Opens the full-screen terminal player: hero now-playing panel,
upcoming track, play history and who else is listening, with live updates
pushed from the station.`,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().BoolVarP(&uiKiosk, "kiosk", "k", false, "hero panel only, for a dedicated display")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	return tui.Run(cfg, logger, uiKiosk)
}
