// Package runner drives a decision graph interactively in a terminal. It
// renders step content as markdown, collects answers, and supports stepping
// back through the visit history.
package runner
