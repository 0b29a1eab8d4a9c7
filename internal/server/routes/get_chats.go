package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/db"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// GetChatsHandler lists the caller's chat threads, newest first.
func GetChatsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App

	chats, err := db.New(app.DBConn).ListChats(c.Request().Context(), user.Email)
	if err != nil {
		logger.Error("Failed to list chats", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, chats)
}

// GetChatHandler returns one chat thread with its full transcript.
func GetChatHandler(c echo.Context) error {
	type getChatParams struct {
		ChatID string `param:"chat_id" validate:"required"`
	}

	type getChatResponse struct {
		Chat     db.Chat          `json:"chat"`
		Messages []db.ChatMessage `json:"messages"`
	}

	params := new(getChatParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	params.ChatID = strings.TrimSpace(params.ChatID)

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	chat, found, err := q.GetChat(ctx, params.ChatID, user.Email)
	if err != nil {
		logger.Error("Failed to look up chat", "chat_id", params.ChatID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Chat not found"})
	}

	messages, err := q.GetChatMessages(ctx, params.ChatID, user.Email)
	if err != nil {
		logger.Error("Failed to load chat history", "chat_id", params.ChatID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getChatResponse{
		Chat:     chat,
		Messages: messages,
	})
}

// DeleteChatHandler removes a chat thread and its transcript.
func DeleteChatHandler(c echo.Context) error {
	type deleteChatParams struct {
		ChatID string `param:"chat_id" validate:"required"`
	}

	params := new(deleteChatParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	_, found, err := q.GetChat(ctx, params.ChatID, user.Email)
	if err != nil {
		logger.Error("Failed to look up chat", "chat_id", params.ChatID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Chat not found"})
	}

	if err := q.DeleteChat(ctx, params.ChatID, user.Email); err != nil {
		logger.Error("Failed to delete chat", "chat_id", params.ChatID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Chat deleted successfully"})
}
