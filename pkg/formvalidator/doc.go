// Package formvalidator binds declarative validation rules to HTML forms and keeps
// their presentation in sync while the user interacts with them.
//
// Forms opt in with a data-validate attribute; every descendant carrying
// data-validate="required|minLength:8" becomes a validated field keyed by its name
// (or id). The engine listens for blur, input and submit events:
//
//   - blur marks the field as touched, validates it and recomputes the form state;
//   - input cancels the field's pending validation, schedules a new one after the
//     debounce window when the field was touched, and immediately updates the
//     password strength meter and the email preview class;
//   - submit prevents the default action, validates every field and either submits
//     (or calls the submit callback) or focuses the first invalid field.
//
// Rules are evaluated in declaration order and stop at the first failure, whose
// message is shown in a generated "<field>_error" element next to the field.
//
// An Engine is an explicit instance over a dom.Document:
//
//	eng := formvalidator.New(doc, formvalidator.WithLogger(log))
//	eng.Init()
//	eng.SetSubmitCallback("registro", func(form dom.Element) { ... })
//
// Every event handler and timer callback runs under one engine lock. Submit
// callbacks and native submission run after the lock is released, so they may call
// back into the engine. Forms added to the page later are picked up by Observe or
// Rescan.
package formvalidator
