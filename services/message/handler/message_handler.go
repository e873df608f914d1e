package handler

//go:generate mockgen -source=message_handler.go -destination=mock_message_handler.go -package=handler

import (
	"context"
	"net/http"

	message "auction-market/internal/messageService"
	"auction-market/internal/models"
	"auction-market/services/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

type MessageServiceInterface interface {
	Create(ctx context.Context, in message.CreateInput) (models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
}

type MessageHandler struct {
	service MessageServiceInterface
}

func NewMessageHandler(service MessageServiceInterface) *MessageHandler {
	return &MessageHandler{service: service}
}

// CreateMessageHandler handles POST /messages
func (h *MessageHandler) CreateMessageHandler(c *gin.Context) {
	var req helpers.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateMessageHandler", err)
		return
	}

	msg, err := h.service.Create(c.Request.Context(), message.CreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		helpers.RespondError(c, "CreateMessageHandler", "failed to store message", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, msg, "your message has been sent successfully")
	helpers.LogSuccess("CreateMessageHandler", "message stored", map[string]any{"message_id": msg.MessageID, "subject": msg.Subject})
}

// ListMessagesHandler handles GET /messages
func (h *MessageHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.service.List(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListMessagesHandler", "failed to list messages", err, nil)
		return
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	text := "messages retrieved successfully"
	if len(msgs) == 0 {
		text = "no messages found"
	}
	utils.JSONResponse(c, http.StatusOK, msgs, text)
}
