package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// input reads lines from a reader on a background goroutine so that reads
// can be abandoned when the context is cancelled.
type input struct {
	reader    *bufio.Reader
	writer    io.Writer
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

func newInput(r io.Reader, w io.Writer) *input {
	return &input{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

func (in *input) initPump() {
	in.startOnce.Do(func() {
		in.inputChan = make(chan inputResult)
		go in.pump()
	})
}

func (in *input) pump() {
	for {
		text, err := in.reader.ReadString('\n')
		if text != "" {
			in.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err == io.EOF {
				close(in.inputChan)
				return
			}
			in.inputChan <- inputResult{err: err}
			// Backoff to prevent CPU spikes on persistent failure.
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// ReadLine prompts and returns one sanitized line, retrying on rejected
// input. It returns the context error if the context ends first.
func (in *input) ReadLine(ctx context.Context, prompt string) (string, error) {
	in.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(in.writer, prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-in.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(trimNewline(res.text))
			if err != nil {
				fmt.Fprintf(in.writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
