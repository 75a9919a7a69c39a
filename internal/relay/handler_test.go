package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/internal/relay"
)

func decodeError(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload.Error
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := relay.NewHandler(nil, nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/generate", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		assert.Equal(t, "Method "+method+" Not Allowed", decodeError(t, rec.Body))
	}
}

func TestHandler_PromptRequired(t *testing.T) {
	h := relay.NewHandler(nil, nil)

	for _, body := range []string{``, `{}`, `{"prompt": ""}`, `not json`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "Prompt is required", decodeError(t, rec.Body))
	}
}

func TestHandler_MissingAPIKey(t *testing.T) {
	h := relay.NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t,
		"Server configuration error: the GEMINI_API_KEY environment variable is not set on the server.",
		decodeError(t, rec.Body))
}

func TestHandler_StreamsText(t *testing.T) {
	gen := relay.GeneratorFunc(func(ctx context.Context, prompt, system string, emit func(string) error) error {
		assert.Equal(t, "summarize", prompt)
		assert.Equal(t, "be brief", system)
		for _, chunk := range []string{"**Summary**", " of the case"} {
			if err := emit(chunk); err != nil {
				return err
			}
		}
		return nil
	})
	h := relay.NewHandler(gen, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"prompt": "summarize", "systemInstruction": "be brief"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "**Summary** of the case", rec.Body.String())
}

func TestHandler_FailureBeforeFirstChunk(t *testing.T) {
	gen := relay.GeneratorFunc(func(ctx context.Context, prompt, system string, emit func(string) error) error {
		return errors.New("upstream returned status 429")
	})
	h := relay.NewHandler(gen, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body), "AI service failed")
}

func TestHandler_MidStreamFailureAbortsConnection(t *testing.T) {
	gen := relay.GeneratorFunc(func(ctx context.Context, prompt, system string, emit func(string) error) error {
		if err := emit("partial "); err != nil {
			return err
		}
		return errors.New("stream broke")
	})
	h := relay.NewHandler(gen, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`))

	// After headers are committed the handler aborts instead of pretending
	// the stream ended cleanly.
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial ", rec.Body.String())
}

func TestHandler_ClientCancellationIsQuiet(t *testing.T) {
	gen := relay.GeneratorFunc(func(ctx context.Context, prompt, system string, emit func(string) error) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h := relay.NewHandler(gen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`)).WithContext(ctx)

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, req)
	})
}
