package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/career-dashboard/internal/logger"
	log "github.com/sirupsen/logrus"
)

type apiInterface interface {
	Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error)
}

type command interface {
	WithKeyboardOnFinalMessage(tgbotapi.ReplyKeyboardMarkup)
	WithFinishCallback(func())
	Run()
	OnUserInput(input string)
}

func sendWithLogError(api apiInterface, chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if chattable == nil {
		return tgbotapi.Message{}, nil
	}
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
	return msg, err
}

// stepCommand walks the user through its input handlers one by one and calls
// finish once the last one accepted its input.
type stepCommand struct {
	api                  apiInterface
	chatID               int64
	inputHandlers        []inputHandler
	curHandlerIndex      int
	finish               func()
	finishCallback       func()
	finalMessageKeyboard *tgbotapi.ReplyKeyboardMarkup
}

func (c *stepCommand) next() {
	c.curHandlerIndex++
}

func (c *stepCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *stepCommand) WithKeyboardOnFinalMessage(keyboard tgbotapi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *stepCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *stepCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[c.curHandlerIndex].HandleInput(input)

	handlerChanged := previousIndex != c.curHandlerIndex
	allHandlersFinished := c.curHandlerIndex >= len(c.inputHandlers)

	if !handlerChanged {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if !allHandlersFinished {
		_, _ = sendWithLogError(c.api, c.inputHandlers[c.curHandlerIndex].InitMessage())
		return
	}

	c.finish()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *stepCommand) finalMessage(text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(c.chatID, text)
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}
	return msg
}
