package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmateus/gemweb/internal/config"
)

var importCookiesCmd = &cobra.Command{
	Use:   "import-cookies <path>",
	Short: "Import session cookies from a JSON file",
	Long: `Copy Gemini session cookies from an exported JSON file into ~/.gemweb.

Two file shapes are accepted:
  - browser-extension export: [{"name": "__Secure-1PSID", "value": "..."}, ...]
  - plain map:                {"__Secure-1PSID": "...", "__Secure-1PSIDTS": "..."}

__Secure-1PSID is required; __Secure-1PSIDTS keeps the session alive longer
but is optional. If the browser holding the session runs on this machine,
'gemweb auto-login' reads the cookies directly and skips the export step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImportCookies(args[0])
	},
}

func runImportCookies(sourcePath string) error {
	if err := config.ImportCookies(sourcePath); err != nil {
		return fmt.Errorf("failed to import cookies: %w", err)
	}

	cookies, err := config.LoadCookies()
	if err != nil {
		return fmt.Errorf("cookies were written but could not be read back: %w", err)
	}

	cookiesPath, _ := config.GetCookiesPath()
	fmt.Printf("Cookies imported to %s\n", cookiesPath)
	fmt.Printf("  __Secure-1PSID:   %s...\n", truncateValue(cookies.Secure1PSID, 20))
	if cookies.Secure1PSIDTS != "" {
		fmt.Printf("  __Secure-1PSIDTS: %s...\n", truncateValue(cookies.Secure1PSIDTS, 20))
	}
	fmt.Println()
	fmt.Println("You can now use gemweb to chat with Gemini!")

	return nil
}
