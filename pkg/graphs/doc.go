// Package graphs holds the built-in decision graph definitions. Each
// clinical algorithm is one parameterized graph; divergences between related
// pathways are data-definition differences, not code forks. Custom flows can
// also be loaded from YAML files.
package graphs
