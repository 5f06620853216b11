package telegram

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const updateJSON = `{
	"update_id": 459592837,
	"message": {
		"message_id": 7,
		"from": {"id": 247673932, "is_bot": false, "first_name": "Liang", "username": "liul85", "language_code": "en"},
		"chat": {"id": 247673932, "first_name": "Liang", "username": "liul85", "type": "private"},
		"date": 1631506802,
		"text": "@KFC chicken 12.9 AUD cba > food"
	}
}`

func TestDecodeUpdate(t *testing.T) {
	update, err := DecodeUpdate(strings.NewReader(updateJSON))
	assert.NoError(t, err)

	assert.Equal(t, int64(459592837), update.UpdateID)

	msg := update.Msg()
	assert.Equal(t, int64(7), msg.MessageID)
	assert.Equal(t, int64(247673932), msg.Chat.ID)
	assert.Equal(t, "@KFC chicken 12.9 AUD cba > food", msg.Text)
	assert.Equal(t, "liul85", msg.From.Username)
}

func TestDecodeUpdateEditedMessage(t *testing.T) {
	payload := `{
		"update_id": 1,
		"edited_message": {
			"message_id": 9,
			"chat": {"id": 42, "type": "private"},
			"date": 1631506802,
			"text": "2021-09-08 @KFC hamburger 12.40 AUD cba > food"
		}
	}`

	update, err := DecodeUpdate(strings.NewReader(payload))
	assert.NoError(t, err)

	msg := update.Msg()
	assert.Equal(t, int64(9), msg.MessageID)
	assert.Equal(t, int64(42), msg.Chat.ID)
}

func TestDecodeUpdateErrors(t *testing.T) {
	_, err := DecodeUpdate(strings.NewReader("not json"))
	assert.Error(t, err)

	_, err = DecodeUpdate(strings.NewReader(`{"update_id": 5}`))
	assert.Error(t, err)
}

func TestNewReply(t *testing.T) {
	update, err := DecodeUpdate(strings.NewReader(updateJSON))
	assert.NoError(t, err)

	reply := NewReply(update.Msg(), "hello")
	assert.Equal(t, "sendMessage", reply.Method)
	assert.Equal(t, int64(247673932), reply.ChatID)
	assert.Equal(t, int64(7), reply.ReplyToMessageID)
	assert.Equal(t, "hello", reply.Text)

	data, err := json.Marshal(reply)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"chat_id":247673932`))
	assert.True(t, strings.Contains(string(data), `"reply_to_message_id":7`))
}

func TestReplyTexts(t *testing.T) {
	success := SuccessText("2021-09-08 * \"KFC\" \"hamburger\"\n")
	assert.True(t, strings.HasPrefix(success, "✅\n"))
	assert.True(t, strings.Contains(success, "2021-09-08"))

	failure := FailureText(assertError("boom"))
	assert.True(t, strings.HasPrefix(failure, "⚠️\n"))
	assert.True(t, strings.Contains(failure, "Failed to parse input: boom"))
}

// assertError is a trivial error value for message formatting tests.
type assertError string

func (e assertError) Error() string { return string(e) }
