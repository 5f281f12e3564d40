package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

const choicesPerRow = 2

// choiceInput offers a fixed set of answers as keyboard buttons and accepts
// only one of them.
type choiceInput struct {
	chatID      int64
	initMessage string
	choices     []string
	onFinish    func(index int)
}

func newChoiceInput(chatID int64, initMessage string, choices []string, onFinish func(index int)) *choiceInput {
	return &choiceInput{chatID: chatID, initMessage: initMessage, choices: choices, onFinish: onFinish}
}

func (a *choiceInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.initMessage)
	msg.ReplyMarkup = a.keyboard()
	return msg
}

func (a *choiceInput) HandleInput(input string) botApi.Chattable {
	index := lo.IndexOf(a.choices, input)
	if index < 0 {
		return botApi.NewMessage(a.chatID, "Please pick one of the offered options.")
	}

	a.onFinish(index)
	return nil
}

func (a *choiceInput) keyboard() botApi.ReplyKeyboardMarkup {
	rows := lo.Map(lo.Chunk(a.choices, choicesPerRow), func(chunk []string, _ int) []botApi.KeyboardButton {
		return botApi.NewKeyboardButtonRow(lo.Map(chunk, func(choice string, _ int) botApi.KeyboardButton {
			return botApi.NewKeyboardButton(choice)
		})...)
	})
	rows = append(rows, botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(backToMenuCommandName)))
	return botApi.NewReplyKeyboard(rows...)
}
