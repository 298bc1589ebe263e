// Package service validates inbound event payloads and converts them into
// the chat core's event types.
package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/RiseHunter/RiseHuntBot/internal/chat"
)

var validate = validator.New()

// CommandRequest is a button press delivered by the transport.
type CommandRequest struct {
	UserID    string `json:"user_id" validate:"required,max=64"`
	Token     string `json:"token" validate:"required,max=128"`
	MessageID string `json:"message_id" validate:"omitempty,max=64"`
}

// MessageRequest is a free-text message delivered by the transport.
type MessageRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Text   string `json:"text" validate:"required,max=4096"`
}

func ValidateCommandRequest(req *CommandRequest) error {
	return validate.Struct(req)
}

func ValidateMessageRequest(req *MessageRequest) error {
	return validate.Struct(req)
}

func (r *CommandRequest) Command() chat.Command {
	return chat.Command{UserID: r.UserID, Token: r.Token, MessageID: r.MessageID}
}

func (r *MessageRequest) Message() chat.Message {
	return chat.Message{UserID: r.UserID, Text: r.Text}
}
