package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RiseHunter/RiseHuntBot/internal/service"
)

func TestValidateCommandRequest(t *testing.T) {
	valid := &service.CommandRequest{UserID: "u1", Token: "start"}
	assert.NoError(t, service.ValidateCommandRequest(valid))

	withMessageID := &service.CommandRequest{UserID: "u1", Token: "goal_done_3", MessageID: "m-42"}
	assert.NoError(t, service.ValidateCommandRequest(withMessageID))

	missingUser := &service.CommandRequest{Token: "start"}
	assert.Error(t, service.ValidateCommandRequest(missingUser))

	missingToken := &service.CommandRequest{UserID: "u1"}
	assert.Error(t, service.ValidateCommandRequest(missingToken))

	longToken := &service.CommandRequest{UserID: "u1", Token: strings.Repeat("x", 129)}
	assert.Error(t, service.ValidateCommandRequest(longToken))
}

func TestValidateMessageRequest(t *testing.T) {
	valid := &service.MessageRequest{UserID: "u1", Text: "hello"}
	assert.NoError(t, service.ValidateMessageRequest(valid))

	empty := &service.MessageRequest{UserID: "u1"}
	assert.Error(t, service.ValidateMessageRequest(empty))

	tooLong := &service.MessageRequest{UserID: "u1", Text: strings.Repeat("a", 4097)}
	assert.Error(t, service.ValidateMessageRequest(tooLong))
}

func TestEventConversion(t *testing.T) {
	cmdReq := &service.CommandRequest{UserID: "u1", Token: "profile", MessageID: "m-1"}
	cmd := cmdReq.Command()
	assert.Equal(t, "u1", cmd.UserID)
	assert.Equal(t, "profile", cmd.Token)
	assert.Equal(t, "m-1", cmd.MessageID)

	msgReq := &service.MessageRequest{UserID: "u2", Text: "note to self"}
	msg := msgReq.Message()
	assert.Equal(t, "u2", msg.UserID)
	assert.Equal(t, "note to self", msg.Text)
}
