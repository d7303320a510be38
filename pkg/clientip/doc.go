// Package clientip resolves the address of the client behind a request.
//
// A Resolver checks a list of proxy headers in order and falls back to
// RemoteAddr. X-Forwarded-For may carry a chain; its first valid address wins.
// Only configure headers that the proxies in front of the server overwrite,
// since clients can send any of them.
//
// The resolved address keys the submission throttle of the site forms.
package clientip
