// Package session coordinates concurrent access to stored wizard sessions.
// A per-session mutex map with reference counting keeps the lock table
// bounded; an optional distributed locker extends the guarantee across
// processes.
package session
