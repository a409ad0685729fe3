// Package store defines the persistence interfaces consumed by the
// scheduling core and the error taxonomy shared by their implementations.
// The core depends only on these interfaces; concrete backends live in
// internal/platform.
package store
