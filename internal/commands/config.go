package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmateus/gemweb/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gemweb settings",
	Long:  `Show and change gemweb settings stored in the config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to the config file.

Available keys:
  model              Default model name (e.g., gemini-2.5-flash, fast, pro)
  verbose            Verbose output (true/false)
  clipboard          Copy responses to clipboard (true/false)
  speech-language    Default language for the speech command (BCP-47 tag)
  download-dir       Directory for downloaded images
  style              Markdown style (dark, light, or path to a theme file)
  preserve-newlines  Keep original line breaks in rendered markdown (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "model\t%s\n", cfg.DefaultModel)
	_, _ = fmt.Fprintf(w, "verbose\t%t\n", cfg.Verbose)
	_, _ = fmt.Fprintf(w, "clipboard\t%t\n", cfg.CopyToClipboard)
	_, _ = fmt.Fprintf(w, "speech-language\t%s\n", cfg.SpeechLanguage)
	_, _ = fmt.Fprintf(w, "download-dir\t%s\n", cfg.DownloadDir)
	_, _ = fmt.Fprintf(w, "style\t%s\n", cfg.Markdown.Style)
	_, _ = fmt.Fprintf(w, "preserve-newlines\t%t\n", cfg.Markdown.PreserveNewLines)
	return w.Flush()
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyConfigValue(&cfg, key, value); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "model":
		cfg.DefaultModel = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.Verbose = b
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.CopyToClipboard = b
	case "speech-language":
		cfg.SpeechLanguage = value
	case "download-dir":
		cfg.DownloadDir = value
	case "style":
		cfg.Markdown.Style = value
	case "preserve-newlines":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value '%s'", value)
		}
		cfg.Markdown.PreserveNewLines = b
	default:
		return fmt.Errorf("unknown config key '%s'", key)
	}
	return nil
}
