// Package middleware wraps a StateStore with cross-cutting persistence
// behavior: encryption at rest and masking of sensitive answers. Both matter
// when the stored state carries patient data.
package middleware

import "github.com/pulmotools/ildflow/pkg/ports"

// Middleware allows wrapping a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore
