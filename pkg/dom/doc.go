// Package dom defines the document model the form engine works against and provides
// an implementation backed by golang.org/x/net/html.
//
// The interfaces mirror the small part of the browser DOM the engine needs: attributes,
// class lists, inline styles, text, traversal with Matcher predicates, insertion,
// event listeners, focus, scrolling and native form submission.
//
// Parse builds a Document from HTML; Render writes it back, which lets a server run the
// same engine over a posted form and re-render the result:
//
//	doc, err := dom.Parse(strings.NewReader(page))
//	form := doc.ElementByID("registro")
//	form.Query(dom.AttrEquals("name", "email")).SetValue("a@b")
//	// ... run the engine ...
//	err = doc.Render(w)
//
// Like the browser DOM, a Document is not safe for concurrent use. Callers serialize
// access; the form engine does so with its own lock.
//
// Observation is scoped: Observe reports elements inserted under one container only,
// instead of watching every mutation of the whole document.
package dom
