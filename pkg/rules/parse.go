package rules

import "strings"

// Token is one parsed entry of a rule declaration.
type Token struct {
	Name  string
	Param Param
}

// Binding is a rule resolved for a field, in declaration order.
type Binding struct {
	Name  string
	Param Param
	Rule  Rule
}

// ParseTokens splits a pipe-delimited declaration such as "required|minLength:8".
// Everything after the first colon is the parameter. Blank tokens are ignored.
func ParseTokens(decl string) []Token {
	if strings.TrimSpace(decl) == "" {
		return nil
	}
	var tokens []Token
	for part := range strings.SplitSeq(decl, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, raw, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tokens = append(tokens, Token{Name: name, Param: ParseParam(raw)})
	}
	return tokens
}

// Bind resolves tokens against l. Names that cannot be resolved are skipped and
// returned in unknown, in declaration order.
func Bind(tokens []Token, l Lookup) (bindings []Binding, unknown []string) {
	bindings = make([]Binding, 0, len(tokens))
	for _, t := range tokens {
		r, ok := l.Lookup(t.Name)
		if !ok {
			unknown = append(unknown, t.Name)
			continue
		}
		bindings = append(bindings, Binding{Name: t.Name, Param: t.Param, Rule: r})
	}
	return bindings, unknown
}

// HasBinding reports whether a rule with the given name is bound.
func HasBinding(bindings []Binding, name string) bool {
	for _, b := range bindings {
		if b.Name == name {
			return true
		}
	}
	return false
}
