package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Chat is one conversation thread.
type Chat struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one query/response pair in a chat.
type ChatMessage struct {
	ID        int64     `json:"id"`
	ChatID    string    `json:"chat_id"`
	UserEmail string    `json:"user_email"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChat inserts a chat thread row.
func (q *Queries) CreateChat(ctx context.Context, chatID string, email string, title string) (Chat, error) {
	var chat Chat
	err := q.conn.QueryRow(
		ctx,
		`INSERT INTO chats (id, user_email, title)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_email, title, created_at`,
		chatID,
		strings.ToLower(email),
		title,
	).Scan(&chat.ID, &chat.UserEmail, &chat.Title, &chat.CreatedAt)
	if err != nil {
		return Chat{}, err
	}

	return chat, nil
}

// GetChat looks up a chat thread owned by the user. The second return
// value is false when no such chat exists.
func (q *Queries) GetChat(ctx context.Context, chatID string, email string) (Chat, bool, error) {
	var chat Chat
	err := q.conn.QueryRow(
		ctx,
		`SELECT id, user_email, title, created_at
		 FROM chats
		 WHERE id = $1 AND user_email = $2`,
		chatID,
		strings.ToLower(email),
	).Scan(&chat.ID, &chat.UserEmail, &chat.Title, &chat.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Chat{}, false, nil
	}
	if err != nil {
		return Chat{}, false, err
	}

	return chat, true, nil
}

// ListChats returns the user's chat threads, newest first.
func (q *Queries) ListChats(ctx context.Context, email string) ([]Chat, error) {
	rows, err := q.conn.Query(
		ctx,
		`SELECT id, user_email, title, created_at
		 FROM chats
		 WHERE user_email = $1
		 ORDER BY created_at DESC`,
		strings.ToLower(email),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]Chat, 0)
	for rows.Next() {
		var chat Chat
		if err := rows.Scan(&chat.ID, &chat.UserEmail, &chat.Title, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// SaveChatMessage appends a query/response pair to a chat.
func (q *Queries) SaveChatMessage(ctx context.Context, chatID string, email string, query string, response string) (ChatMessage, error) {
	var msg ChatMessage
	err := q.conn.QueryRow(
		ctx,
		`INSERT INTO chat_messages (chat_id, user_email, query, response)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, chat_id, user_email, query, response, created_at`,
		chatID,
		strings.ToLower(email),
		query,
		response,
	).Scan(&msg.ID, &msg.ChatID, &msg.UserEmail, &msg.Query, &msg.Response, &msg.CreatedAt)
	if err != nil {
		return ChatMessage{}, err
	}

	return msg, nil
}

// GetChatMessages returns a chat's transcript in chronological order.
func (q *Queries) GetChatMessages(ctx context.Context, chatID string, email string) ([]ChatMessage, error) {
	rows, err := q.conn.Query(
		ctx,
		`SELECT id, chat_id, user_email, query, response, created_at
		 FROM chat_messages
		 WHERE chat_id = $1 AND user_email = $2
		 ORDER BY created_at ASC`,
		chatID,
		strings.ToLower(email),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]ChatMessage, 0)
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.UserEmail, &msg.Query, &msg.Response, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// DeleteChat removes a chat thread and its messages.
func (q *Queries) DeleteChat(ctx context.Context, chatID string, email string) error {
	_, err := q.conn.Exec(
		ctx,
		`DELETE FROM chats WHERE id = $1 AND user_email = $2`,
		chatID,
		strings.ToLower(email),
	)
	return err
}
