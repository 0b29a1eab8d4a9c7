package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/db"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/util"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/ai"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

const chatContextChunks = 5

// ChatStreamHandler answers a chat message over the caller's documents and
// streams the response as newline-delimited JSON. Omitting chat_id starts
// a new conversation.
func ChatStreamHandler(c echo.Context) error {
	type chatStreamBody struct {
		ChatID  string `json:"chat_id"`
		Message string `json:"message" validate:"required"`
	}

	type streamEvent struct {
		ChatID  string `json:"chat_id"`
		Content string `json:"content"`
		Done    bool   `json:"done"`
	}

	data := new(chatStreamBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	history := make([]db.ChatMessage, 0)
	chatID := strings.TrimSpace(data.ChatID)
	if chatID != "" {
		_, found, err := q.GetChat(ctx, chatID, user.Email)
		if err != nil {
			logger.Error("Failed to look up chat", "chat_id", chatID, "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
		if !found {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Chat not found"})
		}
		history, err = q.GetChatMessages(ctx, chatID, user.Email)
		if err != nil {
			logger.Error("Failed to load chat history", "chat_id", chatID, "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
	} else {
		id, err := util.NewChatID()
		if err != nil {
			logger.Error("Failed to create chat id", "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
		chatID = id

		if _, err := q.CreateChat(ctx, chatID, user.Email, chatTitle(ctx, app.AiClient, data.Message)); err != nil {
			logger.Error("Failed to create chat", "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
	}

	embedding, err := app.AiClient.GenerateEmbedding(ctx, []byte(data.Message))
	if err != nil {
		logger.Error("Failed to embed chat message", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	chunks, err := app.Vector.Search(ctx, user.Container, embedding, chatContextChunks)
	if err != nil {
		logger.Error("Failed to retrieve context chunks", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	excerpts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		excerpts = append(excerpts, fmt.Sprintf("From %s:\n%s", chunk.FileName, chunk.Content))
	}
	if len(excerpts) == 0 {
		excerpts = append(excerpts, "(no documents uploaded yet)")
	}
	systemPrompt := fmt.Sprintf(ai.ChatSystemPrompt, strings.Join(excerpts, "\n\n---\n\n"))

	messages := make([]ai.ChatMessage, 0, 2*len(history)+1)
	for _, msg := range history {
		messages = append(messages, ai.ChatMessage{Role: "user", Message: msg.Query})
		messages = append(messages, ai.ChatMessage{Role: "assistant", Message: msg.Response})
	}
	messages = append(messages, ai.ChatMessage{Role: "user", Message: data.Message})

	contentChan, err := app.AiClient.GenerateChatStream(
		ctx,
		messages,
		ai.WithSystemPrompts(systemPrompt),
	)
	if err != nil {
		logger.Error("Failed to start chat stream", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)
	enc := json.NewEncoder(c.Response())

	var responseBuffer strings.Builder
	for event := range contentChan {
		if event.Content != "" {
			responseBuffer.WriteString(event.Content)
		}
		if err := enc.Encode(streamEvent{
			ChatID:  chatID,
			Content: event.Content,
			Done:    event.Done,
		}); err != nil {
			return err
		}
		c.Response().Flush()
	}

	response := responseBuffer.String()
	if ctx.Err() != nil || !saveableChatResponse(response) {
		logger.Warn("Skipping chat message save", "chat_id", chatID)
		return nil
	}

	if _, err := q.SaveChatMessage(ctx, chatID, user.Email, data.Message, response); err != nil {
		logger.Error("Failed to save chat message", "chat_id", chatID, "err", err)
	}

	return nil
}

// saveableChatResponse reports whether a streamed response should be
// persisted. A failed or aborted stream leaves the buffer empty; saving
// it would record a blank assistant turn.
func saveableChatResponse(response string) bool {
	return strings.TrimSpace(response) != ""
}

// chatTitle names a new conversation from its first message. Falls back to
// a static title when the model call fails.
func chatTitle(ctx context.Context, client ai.Client, message string) string {
	type titleFormat struct {
		Title string `json:"title" jsonschema_description:"Short title for the conversation"`
	}

	var out titleFormat
	err := client.GenerateCompletionWithFormat(
		ctx,
		"chat_title",
		"A short title for a chat conversation",
		fmt.Sprintf(ai.ChatTitlePrompt, message),
		&out,
		ai.WithTemperature(0.3),
	)
	if err != nil || strings.TrimSpace(out.Title) == "" {
		if err != nil {
			logger.Warn("Failed to generate chat title", "err", err)
		}
		return "New Chat"
	}

	return strings.TrimSpace(out.Title)
}
