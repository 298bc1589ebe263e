package api

import (
	"github.com/gin-gonic/gin"

	"github.com/RiseHunter/RiseHuntBot/internal/service"
)

// PostCommand receives a button-press event from the chat transport and runs
// it through the conversation machine. Flow-level problems (bad input, not
// found, already done) come back in-band as re-prompt replies; only
// malformed requests and infrastructure failures surface as HTTP errors.
func PostCommand(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CommandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCommandRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		reply := app.Machine().HandleCommand(c.Request.Context(), req.Command())
		HandleSuccess(c, app.Logger(), reply, nil)
	}
}

// PostMessage receives a free-text message event.
func PostMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateMessageRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		reply := app.Machine().HandleText(c.Request.Context(), req.Message())
		HandleSuccess(c, app.Logger(), reply, nil)
	}
}
