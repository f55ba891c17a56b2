package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
)

type ContactHandler struct {
	mailer   client.Mailer
	operator string
}

func NewContactHandler(mailer client.Mailer, operatorAddress string) *ContactHandler {
	return &ContactHandler{
		mailer:   mailer,
		operator: operatorAddress,
	}
}

func (h *ContactHandler) Send(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	msg := &client.Message{
		To:      h.operator,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Contact Form Message from %s", req.Name),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2>New Contact Form Message</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <p style="white-space: pre-wrap;">%s</p>
</div>`,
			template.HTMLEscapeString(req.Name),
			template.HTMLEscapeString(req.Email),
			template.HTMLEscapeString(req.Message)),
	}

	if err := h.mailer.Send(ctx, msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
