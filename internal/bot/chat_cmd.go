package bot

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/career-dashboard/internal/workspace"
)

const chatCommandName = "chat"

// chatCommand relays every message to the career mentor until the user goes
// back to the main menu.
type chatCommand struct {
	api    apiInterface
	chatID int64
	ws     *workspace.Workspace
}

func newChatCommand(api apiInterface, chatID int64, ws *workspace.Workspace) *chatCommand {
	return &chatCommand{api: api, chatID: chatID, ws: ws}
}

func (c *chatCommand) WithFinishCallback(func()) {}

func (c *chatCommand) WithKeyboardOnFinalMessage(botApi.ReplyKeyboardMarkup) {}

func (c *chatCommand) Run() {
	msg := botApi.NewMessage(c.chatID, "Ask the career mentor anything. Press \""+backToMenuCommandName+
		"\" when you are done.")
	msg.ReplyMarkup = keyboardWithExit()
	_, _ = sendWithLogError(c.api, msg)
}

func (c *chatCommand) OnUserInput(input string) {
	c.ws.Chat.SetInput(input)

	reply, err := c.ws.Chat.Send(context.Background())
	if err != nil {
		return
	}

	_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, reply.Content))
}
