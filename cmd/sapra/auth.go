package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long:  `Set up and inspect the Google Sheets credentials used by --export sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())
	cmd.AddCommand(authStatusCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the token next to your config
3. Store the refresh token in your config file`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	tokenFile, err := tokenPath()
	if err != nil {
		return err
	}
	common.LogInfo("Starting Google Sheets authentication", common.Fields{"token_file": tokenFile})

	token, err := sheets.Authenticate(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	}, func(url string) {
		fmt.Fprintln(out, cli.FormatInfo("Open this URL to authorize sapra:")) //nolint:forbidigo // User-facing output
		fmt.Fprintln(out, url)                                                 //nolint:forbidigo // User-facing output
		openBrowser(url)
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		common.LogWarn(err, "Failed to update config file with refresh token", nil)
		fmt.Fprintln(out, cli.FormatWarning("Could not save the refresh token to the config file."))          //nolint:forbidigo // User-facing output
		fmt.Fprintf(out, "Add this to your config.yaml:\nsheets:\n  refresh_token: %q\n", token.RefreshToken) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(out, cli.FormatSuccess("Google Sheets is configured. Use --export sheets to export reports.")) //nolint:forbidigo // User-facing output
	return nil
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved Google Sheets token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokenFile, err := tokenPath()
			if err != nil {
				return err
			}
			return runAuthStatus(cmd.OutOrStdout(), tokenFile)
		},
	}
}

func runAuthStatus(out io.Writer, tokenFile string) error {
	token, err := sheets.LoadToken(tokenFile)
	if os.IsNotExist(err) {
		fmt.Fprintln(out, cli.FormatWarning("Not authenticated. Run 'sapra auth sheets'.")) //nolint:forbidigo // User-facing output
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	switch {
	case token.RefreshToken == "":
		fmt.Fprintln(out, cli.FormatWarning("Token has no refresh token. Run 'sapra auth sheets' again.")) //nolint:forbidigo // User-facing output
	case token.Expiry.IsZero():
		fmt.Fprintln(out, cli.FormatSuccess("Authenticated")) //nolint:forbidigo // User-facing output
	default:
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Authenticated, access token expires %s", //nolint:forbidigo // User-facing output
			token.Expiry.Format("2006-01-02 15:04"))))
	}
	return nil
}

// tokenPath returns where the OAuth2 token is kept.
func tokenPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "sapra", "sheets-token.json"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "sapra", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec,forbidigo
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec,forbidigo
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec,forbidigo
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
