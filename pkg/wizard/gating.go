package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pulmotools/ildflow/pkg/domain"
)

// IncompleteError reports which required fields are still unanswered,
// grouped by the section they are presented under, so the caller can point
// the user at the right place instead of failing silently.
type IncompleteError struct {
	Missing map[string][]string
}

func (e *IncompleteError) Error() string {
	sections := make([]string, 0, len(e.Missing))
	for s := range e.Missing {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, fmt.Sprintf("%s: %s", s, strings.Join(e.Missing[s], ", ")))
	}
	return "required answers missing (" + strings.Join(parts, "; ") + ")"
}

// CheckComplete verifies that every field a step requires is answered.
// Returns nil when the step declares no requirements or all are satisfied,
// otherwise an *IncompleteError listing the gaps per section.
func CheckComplete(step *domain.Step, state *domain.State) error {
	var missing map[string][]string
	for _, req := range step.Requires {
		for _, field := range req.Fields {
			if state.Answered(field) {
				continue
			}
			if missing == nil {
				missing = make(map[string][]string)
			}
			missing[req.Section] = append(missing[req.Section], field)
		}
	}
	if missing != nil {
		return &IncompleteError{Missing: missing}
	}
	return nil
}
