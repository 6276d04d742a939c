package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmateus/gemweb/internal/config"
	"github.com/dmateus/gemweb/internal/models"
)

var (
	speechLangFlag   string
	speechOutputFlag string
)

var speechCmd = &cobra.Command{
	Use:   "speech <text>",
	Short: "Synthesize speech from text",
	Long: `Generate spoken audio for the given text and save it as a WAV file.

The language defaults to the speech-language config setting; pass --lang
to override it for one invocation.

Examples:
  gemweb speech "Hello there"
  gemweb speech "Bonjour" --lang fr-FR -o bonjour.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeech(args[0])
	},
}

func init() {
	speechCmd.Flags().StringVar(&speechLangFlag, "lang", "", "Language tag for synthesis (e.g., en-US)")
	speechCmd.Flags().StringVarP(&speechOutputFlag, "output", "o", "", "Output WAV file (default speech.wav)")
}

func runSpeech(text string) error {
	cfg, _ := config.LoadConfig()

	lang := speechLangFlag
	if lang == "" {
		lang = cfg.SpeechLanguage
	}

	client, err := newClient(models.ModelFromName(getModel()), false)
	if err != nil {
		return err
	}
	defer client.Close()

	spin := newSpinner("Connecting to Gemini")
	spin.start()
	if err := client.Init(); err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to initialize"))
		return fmt.Errorf("failed to initialize: %w", err)
	}
	spin.stopWithSuccess("Connected")

	spin = newSpinner("Synthesizing speech")
	spin.start()
	audio, err := client.Speech(text, lang)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Speech synthesis failed"))
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	outPath := speechOutputFlag
	if outPath == "" {
		outPath = "speech.wav"
	}

	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		spin.stopWithError()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	spin.stopWithSuccess(fmt.Sprintf("Audio saved to %s", outPath))

	return nil
}
