package handler

import (
	"github.com/labstack/echo/v4"

	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
	"swapskillz/pkg/utils"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,max=2000"`
	SwapID      string `json:"swap_id"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messageUseCase.Send(c.Request().Context(), currentUserID(c), usecase.SendMessageInput{
		RecipientID: req.RecipientID,
		Content:     req.Content,
		SwapID:      req.SwapID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) GetInbox(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	messages, total, err := h.messageUseCase.Inbox(c.Request().Context(), currentUserID(c), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, p.Page, p.PageSize)
}

func (h *MessageHandler) GetConversation(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	messages, total, err := h.messageUseCase.Conversation(c.Request().Context(), currentUserID(c), c.Param("userId"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, p.Page, p.PageSize)
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	message, err := h.messageUseCase.MarkRead(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, message)
}

func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.messageUseCase.UnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int64{"unread": count})
}
