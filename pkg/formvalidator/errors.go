package formvalidator

import "errors"

var (
	// ErrNotAForm is returned by RegisterForm for elements other than <form>.
	ErrNotAForm = errors.New("formvalidator: element is not a form")
	// ErrFormNotFound is returned for unknown form ids.
	ErrFormNotFound = errors.New("formvalidator: form not found")
	// ErrFieldNotFound is returned for unknown field keys.
	ErrFieldNotFound = errors.New("formvalidator: field not found")
)
