// Package flash carries one-shot messages across a redirect in a signed cookie.
//
// After a form is accepted the handler stores a message and redirects; the next
// page reads it once and the cookie is cleared. Values are signed with
// HMAC-SHA256. Several secrets may be configured: the first signs, all verify,
// so secrets can be rotated without dropping messages in flight.
//
//	m, err := flash.New(cfg)
//	_ = m.Set(w, flash.Message{Kind: flash.Success, Text: "¡Registro exitoso!"})
//	http.Redirect(w, r, "/iniciar-sesion", http.StatusSeeOther)
//
//	// on the next request
//	if msg, ok := m.Pop(w, r); ok { ... }
package flash
