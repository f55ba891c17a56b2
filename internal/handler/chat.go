package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Message(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, dto.ChatResponse{
			Success: false,
			Message: "Message is required",
		})
	}

	return c.JSON(http.StatusOK, dto.ChatResponse{
		Success: true,
		Message: h.chatService.Respond(req.Message),
	})
}

func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Chatbot service is running",
	})
}
