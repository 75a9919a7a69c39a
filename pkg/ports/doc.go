// Package ports declares the interfaces between the wizard core and its
// adapters: state persistence and distributed locking.
package ports
