// Package commands provides the CLI commands for gemweb.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmateus/gemweb/internal/browser"
	"github.com/dmateus/gemweb/internal/config"
)

var (
	// Global flags
	modelFlag          string
	outputFlag         string
	fileFlag           string
	rawFlag            bool
	saveImagesFlag     string
	browserRefreshFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gemweb [prompt]",
	Short: "CLI for the Gemini web API",
	Long: `gemweb is a command-line interface for Gemini using the same web API
the browser app talks to. It authenticates with browser cookies and
needs no API key.

Examples:
  gemweb chat                        Start interactive chat
  gemweb config show                 Show current settings
  gemweb import-cookies ~/cookies.json
  gemweb "What is Go?"               Send a single query
  gemweb -f prompt.md                Read prompt from file
  cat prompt.md | gemweb             Read prompt from stdin
  gemweb "Hello" -o response.md      Save response to file
  gemweb --raw "Hello" | less        Plain text output for piping`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("gemweb %s (built %s)\n", Version, BuildTime)
			return nil
		}

		prompt, ok, err := resolvePrompt(args)
		if err != nil {
			return err
		}
		if !ok {
			return cmd.Help()
		}
		return runQuery(prompt, rawFlag)
	},
}

// resolvePrompt picks the prompt source: --file wins, then stdin, then the
// positional argument. ok is false when no source provided anything.
func resolvePrompt(args []string) (string, bool, error) {
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	rootCmd.PersistentFlags().StringVar(&browserRefreshFlag, "browser-refresh", "",
		"Auto-refresh cookies from browser on auth failure (auto, chrome, firefox, edge, chromium, opera)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print only the raw response text")
	rootCmd.Flags().StringVar(&saveImagesFlag, "save-images", "", "Download response images to the given directory")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(importCookiesCmd)
	rootCmd.AddCommand(autoLoginCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(speechCmd)
}

// getModel returns the model name to use (from flag or config)
func getModel() string {
	if modelFlag != "" {
		return modelFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "gemini-2.5-flash"
	}

	return cfg.DefaultModel
}

// getBrowserRefresh returns the browser type for auto-refresh, or false if disabled
func getBrowserRefresh() (browser.SupportedBrowser, bool) {
	if browserRefreshFlag == "" {
		return "", false
	}

	browserType, err := browser.ParseBrowser(browserRefreshFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid browser-refresh value '%s', disabling browser refresh\n", browserRefreshFlag)
		return "", false
	}

	return browserType, true
}
