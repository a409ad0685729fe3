// Package api implements the HTTP handlers for the ProEvals API: drill
// selection and attempt recording, quota queries, leaderboards, account
// management and drill bank imports. Handlers are a thin shell over the
// service layer; they decode and validate requests, branch on the service
// error taxonomy and write sanitized responses.
package api
