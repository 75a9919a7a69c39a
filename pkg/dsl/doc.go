/*
Package dsl provides a fluent builder for constructing decision graphs in Go
code instead of YAML.

It is useful for unit tests, for generating graphs dynamically, and for
embedding small pathways directly in an application with type checking and
IDE completion.

Example usage:

	b := dsl.New("triage", "Quick triage")

	b.Step("start").
		Title("Symptoms").
		Question("Is the patient dyspneic?").
		Option("Yes", "yes", "refer").
		Option("No", "no", "monitor")

	b.Step("refer").
		Title("Referral").
		Content("Refer to the ILD clinic.")

	b.Step("monitor").
		Title("Monitoring").
		Content("Re-evaluate in 12 months.")

	g, err := b.Build()
	// ... register g or hand it to wizard.NewEngine
*/
package dsl
