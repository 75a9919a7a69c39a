package middleware

import (
	"context"
	"regexp"

	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/ports"
)

type maskMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewMaskMiddleware creates a middleware that masks answers whose field name
// matches one of the patterns before they reach the store. The in-memory
// state used by the engine is left untouched.
func NewMaskMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &maskMiddleware{next: next, patterns: patterns}
	}
}

func (m *maskMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	cloned := state.Clone()
	maskAnswers(cloned.Answers, m.patterns)
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *maskMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *maskMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *maskMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskAnswers(answers map[string]any, patterns []*regexp.Regexp) {
	for field := range answers {
		for _, p := range patterns {
			if p.MatchString(field) {
				answers[field] = "***"
				break
			}
		}
	}
}
