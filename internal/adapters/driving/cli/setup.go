package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Check and prepare your environment",
	Long: `Walks through everything a first connection needs:

  1. Tunnelblick installed and running
  2. NordVPN service credentials (NORD_USER / NORD_PASS)
  3. NordVPN API reachable

Missing credentials can be entered interactively and saved to a .env
file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}

	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())
	failed := false

	cmd.Println("NordVPN CLI Setup")
	cmd.Println("=================")
	cmd.Println()

	// Step 1: Tunnelblick.
	cmd.Println("Step 1: Tunnelblick")
	if !setupService.ClientInstalled() {
		failed = true
		cmd.Printf("  %s Tunnelblick is not installed.\n", styleBad.Render("✗"))
		cmd.Println("    Install it from https://tunnelblick.net and re-run setup.")
	} else {
		cmd.Printf("  %s Tunnelblick is installed.\n", styleGood.Render("✓"))

		running, err := setupService.ClientRunning(ctx)
		if err != nil {
			failed = true
			cmd.Printf("  %s Could not check Tunnelblick: %v\n", styleBad.Render("✗"), err)
		} else if running {
			cmd.Printf("  %s Tunnelblick is running.\n", styleGood.Render("✓"))
		} else {
			cmd.Print("  Tunnelblick is not running. Launch it now? [y/N]: ")
			if confirm(reader) {
				if err := setupService.LaunchClient(ctx); err != nil {
					failed = true
					cmd.Printf("  %s Launch failed: %v\n", styleBad.Render("✗"), err)
				} else {
					cmd.Printf("  %s Tunnelblick launched.\n", styleGood.Render("✓"))
				}
			} else {
				cmd.Println("  Skipped. It will be launched on first connect.")
			}
		}
	}
	cmd.Println()

	// Step 2: Service credentials.
	cmd.Println("Step 2: NordVPN service credentials")
	creds, err := setupService.Credentials(ctx)
	switch {
	case err == nil:
		cmd.Printf("  %s Credentials found for %s.\n",
			styleGood.Render("✓"), creds.MaskedUsername())
	case errors.Is(err, domain.ErrNoCredentials):
		cmd.Println("  NORD_USER / NORD_PASS are not set. These are the service")
		cmd.Println("  credentials from " + domain.ManualSetupURL)
		cmd.Print("  Enter them now? [y/N]: ")
		if confirm(reader) {
			if err := promptCredentials(cmd, reader); err != nil {
				failed = true
				cmd.Printf("  %s %v\n", styleBad.Render("✗"), err)
			}
		} else {
			failed = true
			cmd.Println("  Skipped. Export NORD_USER and NORD_PASS before connecting.")
		}
	default:
		failed = true
		cmd.Printf("  %s %v\n", styleBad.Render("✗"), err)
	}
	cmd.Println()

	// Step 3: API reachability.
	cmd.Println("Step 3: NordVPN API")
	count, err := setupService.VerifyAPI(ctx)
	if err != nil {
		failed = true
		cmd.Printf("  %s API not reachable: %v\n", styleBad.Render("✗"), err)
	} else {
		cmd.Printf("  %s API reachable (%d countries).\n", styleGood.Render("✓"), count)
	}
	cmd.Println()

	if failed {
		return errors.New("setup incomplete, fix the failed steps above")
	}

	cmd.Println("All set. Try:")
	cmd.Println("  nordvpn servers us")
	cmd.Println("  nordvpn connect --country us")
	cmd.Println("  nordvpn status")
	return nil
}

// promptCredentials asks for the service credentials and optionally
// writes them to a .env file in the working directory.
func promptCredentials(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Print("  Service username: ")
	username := readLine(reader)
	cmd.Print("  Service password: ")
	password := readPassword(reader)
	cmd.Println()

	creds := domain.Credentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("both username and password are required: %w", err)
	}

	// Make them available to this process regardless of saving.
	os.Setenv("NORD_USER", username) //nolint:errcheck
	os.Setenv("NORD_PASS", password) //nolint:errcheck

	cmd.Print("  Save to .env in the current directory? [y/N]: ")
	if !confirm(reader) {
		cmd.Println("  Not saved. Credentials apply to this run only.")
		return nil
	}

	content := fmt.Sprintf("NORD_USER=%s\nNORD_PASS=%s\n", username, password)
	if err := os.WriteFile(".env", []byte(content), 0600); err != nil {
		return fmt.Errorf("write .env: %w", err)
	}
	cmd.Printf("  %s Saved to .env.\n", styleGood.Render("✓"))
	return nil
}
