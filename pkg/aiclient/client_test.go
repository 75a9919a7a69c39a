package aiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/pkg/aiclient"
	"github.com/pulmotools/ildflow/pkg/resolver"
)

func TestStreamText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req aiclient.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Prompt)

		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, chunk := range []string{"**Clinical ", "Summary**", "\n\ndone"} {
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL)

	var deltas []string
	text, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "hello"}, func(chunk string) {
		deltas = append(deltas, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "**Clinical Summary**\n\ndone", text)
	assert.Equal(t, text, strings.Join(deltas, ""))
}

func TestStreamText_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Server configuration error: the GEMINI_API_KEY environment variable is not set on the server."}`))
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL)
	_, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI Service is not available")
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestStreamText_ErrorStatusWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL)
	_, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 418")
}

func TestStreamText_RetriesTransportFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			// Kill the connection before any response is written.
			hj := w.(http.Hijacker)
			conn, _, _ := hj.Hijack()
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL, aiclient.WithRetries(2))

	start := time.Now()
	text, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.EqualValues(t, 3, calls.Load())
	// Linear backoff: 1s after the first failure, 2s after the second.
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Second)
}

func TestStreamText_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		_ = conn.Close()
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL, aiclient.WithRetries(1))
	_, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI Service is not available")
	assert.EqualValues(t, 2, calls.Load(), "one initial attempt plus one retry")
}

func TestStreamText_CancelledBeforeCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := aiclient.New(srv.URL)
	_, err := client.StreamText(ctx, aiclient.Request{Prompt: "x"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, aiclient.IsCancellation(err))
	assert.EqualValues(t, 0, calls.Load())
}

func TestStreamText_TimeoutAppliesWithoutDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel the request context.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := aiclient.New(srv.URL, aiclient.WithTimeout(100*time.Millisecond), aiclient.WithRetries(0))
	_, err := client.StreamText(context.Background(), aiclient.Request{Prompt: "x"}, nil)
	require.Error(t, err)
	assert.True(t, aiclient.IsCancellation(err))
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, aiclient.IsCancellation(context.Canceled))
	assert.True(t, aiclient.IsCancellation(context.DeadlineExceeded))
	assert.False(t, aiclient.IsCancellation(assert.AnError))
	assert.False(t, aiclient.IsCancellation(nil))
}

func TestBuildScreeningPrompt(t *testing.T) {
	req := aiclient.BuildScreeningPrompt(resolver.ScreeningInput{
		SARD:        "SSc",
		RiskFactors: []string{"anti-scl70", "mystery-token"},
		Symptoms:    nil,
	}, resolver.RiskHigh)

	assert.Contains(t, req.Prompt, "Systemic Sclerosis (SSc)")
	assert.Contains(t, req.Prompt, "Anti-Scl-70 (topoisomerase I) positive")
	assert.Contains(t, req.Prompt, "mystery-token", "unknown tokens pass through untouched")
	assert.Contains(t, req.Prompt, "**Presenting ILD Symptoms:** none")
	assert.Contains(t, req.Prompt, "**ILD Already Diagnosed:** No")
	assert.Contains(t, req.Prompt, "high")
	assert.Contains(t, req.SystemInstruction, "pulmonology and rheumatology")
}

func TestBuildTreatmentPrompt(t *testing.T) {
	req := aiclient.BuildTreatmentPrompt("MII", resolver.ContextRPILD)
	assert.Contains(t, req.Prompt, "Inflammatory Myopathies (IIM)")
	assert.Contains(t, req.Prompt, "Rapidly Progressive ILD (RP-ILD)")
	assert.Contains(t, req.SystemInstruction, "ACR 2023")

	// Unknown tokens degrade to themselves.
	req = aiclient.BuildTreatmentPrompt("Lupus", resolver.TreatmentContext("other"))
	assert.Contains(t, req.Prompt, "Lupus")
	assert.Contains(t, req.Prompt, "other")
}

func TestBuildILAPrompt(t *testing.T) {
	in := resolver.ILAInput{Context: "lcs", PatientInfo: []string{"family"}}
	rec := resolver.StratifyILA(resolver.ILAInput{Fibrotic: "yes"})

	req := aiclient.BuildILAPrompt(in, rec)
	assert.Contains(t, req.Prompt, "Lung Cancer Screening program")
	assert.Contains(t, req.Prompt, "Family history of pulmonary fibrosis")
	assert.Contains(t, req.Prompt, "High Risk - ILD MDM")
	assert.Contains(t, req.SystemInstruction, "Fleischner")

	empty := aiclient.BuildILAPrompt(resolver.ILAInput{}, rec)
	assert.Contains(t, empty.Prompt, "**Context of Discovery:** Not specified")
	assert.Contains(t, empty.Prompt, "**Additional Clinical Context:** None specified")
}
