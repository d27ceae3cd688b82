package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/browser"
	"github.com/matieusz/onlyyes/internal/wizard"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the station",
	Long: `Signs in to the station. The backend authenticates through the
website; this opens the login page in a browser and then stores the
session cookie the site hands out.

To find the cookie after signing in: open the browser dev tools, go to
the site's cookies and copy the value named "session".`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return fmt.Errorf("login is interactive; set server.session in the config file instead")
	}

	loginURL := cfg.Server.BaseURL + "/login"
	fmt.Println("Opening the station login page...")
	if err := browser.Open(loginURL); err != nil {
		fmt.Printf("Could not open a browser automatically.\nPlease open this URL yourself:\n\n%s\n\n", loginURL)
	}

	var session string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session cookie").
				Description("Paste the \"session\" cookie value from the site").
				EchoMode(huh.EchoModePassword).
				Value(&session).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("the session cookie cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return fmt.Errorf("login cancelled: %w", err)
	}

	if err := setConfigValue("server", "session", session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	// Confirm the session actually works.
	cfg.Server.Session = session
	user, err := newClient().Me(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Session saved, but verifying it failed:", err)
		return nil
	}

	NormalF("Signed in as %s (%s)", user.Username, user.RankName)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := setConfigValue("server", "session", ""); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	Minimal("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := newClient().Me(cmd.Context())
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(user)
	}

	role := ""
	if user.IsAdmin {
		role = " · moderator"
	}
	NormalF("%s — %s (%d XP)%s", user.Username, user.RankName, user.XP, role)
	return nil
}
