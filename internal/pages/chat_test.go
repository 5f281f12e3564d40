package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_ChatPage_Send_ShouldAppendUserMessageAndReplyInOrder(t *testing.T) {

	assert := assert.New(t)

	m := &mockAPI{}
	m.On("Chat", mock.Anything, []models.ChatMessage{models.NewUserMessage("What should I learn?")}).
		Return(models.NewAssistantMessage("Docker."), nil).Once()
	m.On("Chat", mock.Anything, []models.ChatMessage{
		models.NewUserMessage("What should I learn?"),
		models.NewAssistantMessage("Docker."),
		models.NewUserMessage("Why?"),
	}).Return(models.NewAssistantMessage("Most matched jobs list it."), nil).Once()

	page := NewChatPage(m)

	page.SetInput(" What should I learn? ")
	_, err := page.Send(context.Background())
	assert.NoError(err)

	page.SetInput("Why?")
	reply, err := page.Send(context.Background())
	assert.NoError(err)
	assert.Equal("Most matched jobs list it.", reply.Content)

	messages := page.Messages()
	assert.Len(messages, 4)
	assert.Equal(models.RoleUser, messages[0].Role)
	assert.Equal(models.RoleAssistant, messages[1].Role)
	assert.Equal(models.RoleUser, messages[2].Role)
	assert.Equal(models.RoleAssistant, messages[3].Role)
	m.AssertExpectations(t)
}

func Test_ChatPage_WhenReplyFails_ShouldAppendFallback(t *testing.T) {

	assert := assert.New(t)

	m := &mockAPI{}
	m.On("Chat", mock.Anything, mock.Anything).Return(models.ChatMessage{}, errors.New("Chatbot unavailable"))

	page := NewChatPage(m)
	page.SetInput("hello")

	reply, err := page.Send(context.Background())

	assert.NoError(err)
	assert.Equal(ChatFallbackReply, reply.Content)
	assert.Equal("", page.Input())
	messages := page.Messages()
	assert.Len(messages, 2)
	assert.Equal(models.NewAssistantMessage(ChatFallbackReply), messages[1])
}

func Test_ChatPage_Send_ShouldClearInputImmediatelyAndIgnoreSecondSend(t *testing.T) {

	assert := assert.New(t)

	b := newBlockingAPI()
	page := NewChatPage(b)
	page.SetInput("hello")

	done := make(chan error)
	go func() {
		_, err := page.Send(context.Background())
		done <- err
	}()

	<-b.started
	assert.Equal("", page.Input())
	assert.True(page.Thinking())
	assert.Len(page.Messages(), 1)

	page.SetInput("again")
	_, err := page.Send(context.Background())
	assert.ErrorIs(err, ErrBusy)

	close(b.release)
	assert.NoError(<-done)
	assert.Equal(int32(1), b.writes.Load())
	assert.Len(page.Messages(), 2)
	assert.False(page.Thinking())
}

func Test_ChatPage_WhenInputBlank_ShouldNotSend(t *testing.T) {

	m := &mockAPI{}
	page := NewChatPage(m)
	page.SetInput("  ")

	_, err := page.Send(context.Background())

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, page.Messages())
	m.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}
