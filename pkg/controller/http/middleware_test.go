package http_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	httpctrl "github.com/huddle-lab/standup/pkg/controller/http"
	"github.com/m-mizutani/gt"
)

// computeSlackSignature computes the Slack signature for testing
func computeSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}

func TestVerifySlackSignature(t *testing.T) {
	signingSecret := "test-signing-secret"
	body := []byte("command=%2Fstandup&text=new")

	t.Run("valid signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		signature := computeSlackSignature(signingSecret, timestamp, string(body))

		gt.NoError(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, signature, body))
	})

	t.Run("invalid signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, "v0=invalid", body))
	})

	t.Run("missing timestamp or signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		signature := computeSlackSignature(signingSecret, timestamp, string(body))

		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, "", signature, body))
		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, "", body))
	})

	t.Run("timestamp too old", func(t *testing.T) {
		old := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
		signature := computeSlackSignature(signingSecret, old, string(body))

		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, old, signature, body))
	})

	t.Run("wrong secret", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		signature := computeSlackSignature("other-secret", timestamp, string(body))

		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, signature, body))
	})

	t.Run("tampered body", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		signature := computeSlackSignature(signingSecret, timestamp, "tampered")

		gt.Error(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, signature, body))
	})
}

func TestSlackSignatureMiddleware(t *testing.T) {
	signingSecret := "test-signing-secret"
	mw := httpctrl.SlackSignatureMiddleware(signingSecret)

	// The inner handler must still see the request body
	var seenBody string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		seenBody = string(data)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("verified request passes through with body intact", func(t *testing.T) {
		body := "command=%2Fstandup&text=new"
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/command", strings.NewReader(body))
		req.Header.Set("X-Slack-Request-Timestamp", timestamp)
		req.Header.Set("X-Slack-Signature", computeSlackSignature(signingSecret, timestamp, body))

		rec := httptest.NewRecorder()
		mw(inner).ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, seenBody).Equal(body)
	})

	t.Run("unsigned request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/command", strings.NewReader("payload"))

		rec := httptest.NewRecorder()
		mw(inner).ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}
