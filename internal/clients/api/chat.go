package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// Chat sends the whole conversation and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, conversation []models.ChatMessage) (models.ChatMessage, error) {
	if len(conversation) == 0 {
		return models.ChatMessage{}, fmt.Errorf("%w: conversation is empty", ErrInvalidRequest)
	}

	var response chatResponse
	err := c.send(ctx, call{name: "chat", method: http.MethodPost, path: "/chatbot/",
		payload: chatRequest{Messages: conversation}}, &response)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return models.NewAssistantMessage(response.Message), nil
}
