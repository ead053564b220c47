// internal/cli/chat.go
package tuxlaunch

import (
	"github.com/spf13/cobra"

	"github.com/tuxai/tuxlaunch/internal/tui"
)

var startChat = tui.Start

// chatCmd represents the 'chat' command. Unlike 'launch' it skips the
// environment bootstrap entirely and starts the chat UI directly — useful
// when the runtime is known to be active or deliberately absent.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a chat session without bootstrapping the environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startChat(getConfig())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
