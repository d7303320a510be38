package dom

import "strings"

// Matcher selects elements.
type Matcher func(Element) bool

// Tag matches elements by tag name, case-insensitively.
func Tag(name string) Matcher {
	name = strings.ToLower(name)
	return func(e Element) bool { return e.TagName() == name }
}

// HasAttr matches elements carrying the attribute.
func HasAttr(name string) Matcher {
	return func(e Element) bool { return e.HasAttr(name) }
}

// AttrEquals matches elements whose attribute equals value.
func AttrEquals(name, value string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// HasClass matches elements carrying the class.
func HasClass(name string) Matcher {
	return func(e Element) bool { return e.HasClass(name) }
}

// ID matches the element with the given id.
func ID(id string) Matcher {
	return func(e Element) bool { return e.ID() == id }
}

// Any matches when at least one matcher matches.
func Any(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if m(e) {
				return true
			}
		}
		return false
	}
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}
