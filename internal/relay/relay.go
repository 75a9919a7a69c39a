// Package relay exposes the AI generation endpoint. The handler accepts a
// prompt, forwards it to a Generator, and streams the produced text back to
// the caller as plain chunked text.
package relay

import "context"

// Generator produces text for a prompt, emitting it incrementally. Emit is
// called once per upstream chunk; returning an error from emit aborts the
// generation.
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string, emit func(text string) error) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt, systemInstruction string, emit func(text string) error) error

func (f GeneratorFunc) Generate(ctx context.Context, prompt, systemInstruction string, emit func(text string) error) error {
	return f(ctx, prompt, systemInstruction, emit)
}
