package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmateus/gemweb/internal/history"
	"github.com/dmateus/gemweb/internal/models"
	"github.com/dmateus/gemweb/internal/tui"
)

var chatResumeFlag string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Gemini.

The chat maintains conversation context across messages and records
turns to local history. Use --resume to continue a saved conversation
(by id, index, title fragment, or the @last/@first aliases).

Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(chatResumeFlag)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatResumeFlag, "resume", "r", "", "Resume a saved conversation")
}

func runChat(resume string) error {
	modelName := getModel()
	model := models.ModelFromName(modelName)

	client, err := newClient(model, true)
	if err != nil {
		return err
	}
	defer client.Close()

	// Initialize client with animation
	spin := newSpinner("Connecting to Gemini")
	spin.start()
	if err := client.Init(); err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to initialize"))
		return fmt.Errorf("failed to initialize: %w", err)
	}
	spin.stopWithSuccess("Connected")

	session := client.StartChat()

	// History persistence is best effort, chat works without it
	store, storeErr := history.DefaultStore()
	if storeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", storeErr)
	}

	var recorder tui.HistoryStore
	if store != nil {
		recorder = store
	}

	var conv *history.Conversation
	if resume != "" {
		if store == nil {
			return fmt.Errorf("cannot resume: %w", storeErr)
		}
		conv, err = history.NewResolver(store).ResolveConversation(resume)
		if err != nil {
			return fmt.Errorf("failed to resume conversation: %w", err)
		}
		if meta := conv.ResumeMetadata(); meta != nil {
			if err := session.SetMetadata(meta...); err != nil {
				return fmt.Errorf("failed to restore conversation state: %w", err)
			}
		}
	}

	return tui.RunChat(session, modelName, recorder, conv)
}
