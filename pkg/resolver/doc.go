// Package resolver maps accumulated wizard answers to classification
// outcomes. Every resolver is a pure, total function: identical answers
// always yield identical output, no resolver holds state, and no resolver
// returns an error for a syntactically valid (even clinically contradictory)
// answer combination.
package resolver
