// Package domain contains the core types shared by every ildflow component:
// decision graphs (Step, Option, Graph) and the per-session wizard state.
//
// The types here are plain data. All behavior (navigation, answer recording,
// gating) lives in pkg/wizard, and all outcome computation lives in
// pkg/resolver, so the graph definitions, the transition rules, and the
// presentation stay independently testable.
package domain
