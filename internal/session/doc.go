// Package session carries per-visitor state for the catalog web UI:
// scs-backed sessions holding flash messages, CSRF protection for the
// add-book form, and browser security headers.
package session
