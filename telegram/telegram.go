// Package telegram holds the Bot API webhook payload types and reply
// helpers. Replies are sent by answering the webhook request with a
// sendMessage body instead of calling the Bot API separately.
package telegram

import (
	"encoding/json"
	"fmt"
	"io"
)

const banner = "=============================="

// Update is an incoming webhook payload. Telegram sends edits as a separate
// edited_message field, which is treated the same as a new message.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
}

// Msg returns the message carried by the update, whether new or edited.
func (u *Update) Msg() *Message {
	if u.Message != nil {
		return u.Message
	}
	return u.EditedMessage
}

// Message is a single Telegram message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// User is the sender of a message.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Type      string `json:"type"`
}

// DecodeUpdate reads a webhook payload. It fails when the body is not valid
// JSON or when the update carries neither a message nor an edited message.
func DecodeUpdate(r io.Reader) (*Update, error) {
	var update Update
	if err := json.NewDecoder(r).Decode(&update); err != nil {
		return nil, fmt.Errorf("decoding update: %w", err)
	}
	if update.Msg() == nil {
		return nil, fmt.Errorf("update %d carries no message or edited message", update.UpdateID)
	}
	return &update, nil
}

// Reply is a sendMessage body returned as the webhook response.
type Reply struct {
	Method           string `json:"method"`
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ReplyToMessageID int64  `json:"reply_to_message_id"`
}

// NewReply builds a reply to the given message.
func NewReply(m *Message, text string) *Reply {
	return &Reply{
		Method:           "sendMessage",
		ChatID:           m.Chat.ID,
		Text:             text,
		ReplyToMessageID: m.MessageID,
	}
}

// SuccessText formats the reply body for a stored entry.
func SuccessText(entry string) string {
	return fmt.Sprintf("✅\n%s\n%s", banner, entry)
}

// FailureText formats the reply body for a rejected input line.
func FailureText(err error) string {
	return fmt.Sprintf("⚠️\n%s\nFailed to parse input: %s", banner, err)
}
