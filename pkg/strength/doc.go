// Package strength scores passwords for the advisory strength meter shown next to
// password fields. It is independent of the password rules that gate submission.
package strength
