package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulmotools/ildflow/pkg/resolver"
)

func TestClassifyUIP(t *testing.T) {
	tests := []struct {
		name  string
		in    resolver.UIPInput
		title string
	}{
		{
			name: "definite UIP",
			in: resolver.UIPInput{
				Honeycombing: "yes",
				Distribution: "typical",
			},
			title: "Definite UIP Pattern",
		},
		{
			name: "probable UIP",
			in: resolver.UIPInput{
				Honeycombing:           "no",
				Reticulation:           "reticulation",
				TractionBronchiectasis: "yes",
				Distribution:           "typical",
			},
			title: "Probable UIP Pattern",
		},
		{
			name: "honeycombing in atypical distribution is indeterminate",
			in: resolver.UIPInput{
				Honeycombing: "yes",
				Distribution: "atypical",
			},
			title: "Indeterminate for UIP Pattern",
		},
		{
			name: "missing traction bronchiectasis is indeterminate",
			in: resolver.UIPInput{
				Honeycombing:           "no",
				Reticulation:           "reticulation",
				TractionBronchiectasis: "no",
				Distribution:           "typical",
			},
			title: "Indeterminate for UIP Pattern",
		},
		{
			name:  "empty input is indeterminate",
			in:    resolver.UIPInput{},
			title: "Indeterminate for UIP Pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := resolver.ClassifyUIP(tt.in)
			assert.Equal(t, tt.title, p.Title)
			assert.NotEmpty(t, p.Description)
			assert.NotEmpty(t, p.Recommendations)
		})
	}
}

func TestClassifyUIP_AlternativeSignsTakePrecedence(t *testing.T) {
	// Alternative signs win even over an otherwise definite UIP picture.
	p := resolver.ClassifyUIP(resolver.UIPInput{
		Honeycombing:     "yes",
		Distribution:     "typical",
		AlternativeSigns: "yes",
	})
	assert.Equal(t, "Pattern Suggestive of an Alternative Diagnosis", p.Title)
}
