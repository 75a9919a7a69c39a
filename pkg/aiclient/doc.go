// Package aiclient talks to the AI generation relay. It builds the clinical
// prompts, performs the HTTP call with bounded retries, and exposes both a
// streaming and a whole-response mode. Cancellation is surfaced as the
// context's own error and is never retried.
package aiclient
