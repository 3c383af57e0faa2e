// handlers/chat_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// ListChat handles listing an excursion's group chat
func (a *API) ListChat(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	messages, err := a.Chat.List(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, messages)
}

// PostChat handles posting a message to an excursion's group chat
func (a *API) PostChat(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	var request models.PostChatMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	message, err := a.Chat.Post(id, request.User, request.Text)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, message)
}
