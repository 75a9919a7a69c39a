/*
Package ildflow implements guided clinical decision pathways for interstitial
lung disease (ILD), together with the rule resolvers behind them and a
streaming relay to an AI summarization service.

The module is organized hexagonally. The core lives in pkg/domain (graphs,
steps, state) and pkg/wizard (the stateless navigation engine); pkg/resolver
holds the pure clinical rule sets (screening risk, UIP pattern, IPAF
criteria, ACR treatment table, ILA stratification, HP score). Adapters under
pkg/adapters expose the core over HTTP, MCP, and pluggable state stores,
while pkg/runner drives a graph interactively in a terminal.

	eng, err := ildflow.NewWizard("diagnostic")
	if err != nil {
	    log.Fatal(err)
	}
	state := eng.Start()
	state, err = eng.SelectOption(state, "no")
*/
package ildflow
