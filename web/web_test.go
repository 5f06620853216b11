package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanbot-dev/beanbot/ast"
	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/telegram"
)

const testConfigYAML = `
currency: AUD
accounts:
  cba: Assets:Bank:CBA
  food: Expenses:Food
  amex: Liabilities:CreditCard:AMEX
`

// recordingStore captures saved entries.
type recordingStore struct {
	entries []string
	err     error
}

func (s *recordingStore) Save(ctx context.Context, tx *ast.Transaction, entry string) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func newTestServer(t *testing.T, store *recordingStore) *Server {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfigYAML))
	assert.NoError(t, err)

	server := New(8080, "beanbot.yaml", store)
	server.SetConfig(cfg)

	return server
}

func postUpdate(t *testing.T, server *Server, text string) *httptest.ResponseRecorder {
	t.Helper()

	payload := fmt.Sprintf(`{
		"update_id": 1,
		"message": {
			"message_id": 7,
			"chat": {"id": 42, "type": "private"},
			"date": 1631506802,
			"text": %q
		}
	}`, text)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	return rec
}

func decodeReply(t *testing.T, rec *httptest.ResponseRecorder) *telegram.Reply {
	t.Helper()

	var reply telegram.Reply
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	return &reply
}

func TestWebhookSavesEntryAndReplies(t *testing.T) {
	store := &recordingStore{}
	server := newTestServer(t, store)

	rec := postUpdate(t, server, "2021-09-08 @KFC hamburger 12.40 AUD cba > food")
	assert.Equal(t, http.StatusOK, rec.Code)

	wantEntry := "2021-09-08 * \"KFC\" \"hamburger\"\n" +
		"  Expenses:Food          12.40 AUD\n" +
		"  Assets:Bank:CBA\n"
	assert.Equal(t, []string{wantEntry}, store.entries)

	reply := decodeReply(t, rec)
	assert.Equal(t, "sendMessage", reply.Method)
	assert.Equal(t, int64(42), reply.ChatID)
	assert.Equal(t, int64(7), reply.ReplyToMessageID)
	assert.True(t, strings.HasPrefix(reply.Text, "✅\n"))
	assert.True(t, strings.Contains(reply.Text, wantEntry))
}

// Parse failures answer 200 with a warning reply; Telegram retries non-2xx
// responses, which would spam the chat with the same broken line.
func TestWebhookRepliesWithParseFailure(t *testing.T) {
	store := &recordingStore{}
	server := newTestServer(t, store)

	rec := postUpdate(t, server, "2021-09-08 @KFC hamburger 12.40 AUD xyz > food")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, len(store.entries))

	reply := decodeReply(t, rec)
	assert.True(t, strings.HasPrefix(reply.Text, "⚠️\n"))
	assert.True(t, strings.Contains(reply.Text, `"xyz"`))
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	server := newTestServer(t, &recordingStore{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookReportsStoreFailure(t *testing.T) {
	store := &recordingStore{err: fmt.Errorf("github is down")}
	server := newTestServer(t, store)

	rec := postUpdate(t, server, "2021-09-08 @KFC hamburger 12.40 AUD cba > food")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookHandlesEditedMessage(t *testing.T) {
	store := &recordingStore{}
	server := newTestServer(t, store)

	payload := `{
		"update_id": 2,
		"edited_message": {
			"message_id": 8,
			"chat": {"id": 42, "type": "private"},
			"date": 1631506802,
			"text": "2021-09-08 @KFC hamburger 12.40 AUD cba > food"
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, len(store.entries))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, &recordingStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"].(string))
	assert.Equal(t, "AUD", body["currency"].(string))
	assert.Equal(t, float64(3), body["accounts"].(float64))
}

// A config swap is atomic: requests see either the old or the new map.
func TestConfigSwap(t *testing.T) {
	store := &recordingStore{}
	server := newTestServer(t, store)

	rec := postUpdate(t, server, "2021-09-08 @KFC hamburger 12.40 AUD cba > groceries")
	assert.True(t, strings.HasPrefix(decodeReply(t, rec).Text, "⚠️\n"))

	updated, err := config.Parse([]byte(testConfigYAML + "  groceries: Expenses:Groceries\n"))
	assert.NoError(t, err)
	server.SetConfig(updated)

	rec = postUpdate(t, server, "2021-09-08 @KFC hamburger 12.40 AUD cba > groceries")
	assert.True(t, strings.HasPrefix(decodeReply(t, rec).Text, "✅\n"))
}
