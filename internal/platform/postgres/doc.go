// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution and the mapping between domain entities and database records:
// users relationally, drills and per-user progress as JSONB documents.
package postgres
