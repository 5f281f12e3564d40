package pages

import (
	"context"
	"sync"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

const ChatFallbackReply = "Sorry, I could not respond."

// ChatPage keeps the conversation in memory only, in send order.
type ChatPage struct {
	chat     chatAPI
	input    field
	guard    busyGuard
	mu       sync.RWMutex
	messages []models.ChatMessage
}

func NewChatPage(chat chatAPI) *ChatPage {
	return &ChatPage{chat: chat, messages: []models.ChatMessage{}}
}

func (p *ChatPage) SetInput(value string) {
	p.input.Set(value)
}

func (p *ChatPage) Input() string {
	return p.input.Value()
}

// Send appends the typed message, clears the input and waits for the reply.
// A failed call appends the fallback reply instead.
func (p *ChatPage) Send(ctx context.Context) (models.ChatMessage, error) {
	var reply models.ChatMessage

	err := p.guard.run(func() error {
		text := p.input.take()
		if text == "" {
			return ErrEmptyInput
		}

		p.mu.Lock()
		p.messages = append(p.messages, models.NewUserMessage(text))
		conversation := append([]models.ChatMessage{}, p.messages...)
		p.mu.Unlock()

		var err error
		reply, err = p.chat.Chat(ctx, conversation)
		if err != nil {
			log.Infof("chat reply failed: %v", err)
			reply = models.NewAssistantMessage(ChatFallbackReply)
		}

		p.mu.Lock()
		p.messages = append(p.messages, reply)
		p.mu.Unlock()
		return nil
	})

	return reply, err
}

func (p *ChatPage) Messages() []models.ChatMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.ChatMessage{}, p.messages...)
}

// Thinking is true while a reply is awaited.
func (p *ChatPage) Thinking() bool {
	return p.guard.Busy()
}
