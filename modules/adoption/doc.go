// Package adoption serves the forms of the adoption site: user registration,
// login, the adoption request and administrator registration.
//
// Every page carries a form[data-validate] that the browser engine validates as
// the user types. Submissions are validated again on the server with the
// matching formrules preset. A valid submission is redirected; an invalid one
// gets the standard JSON error response when the client asks for JSON, and the
// page re-rendered with the values and errors projected by a server-side form
// engine otherwise.
package adoption
