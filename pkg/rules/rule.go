package rules

import (
	"maps"
	"slices"
	"sync"
)

// Test reports whether value satisfies the rule for parameter p.
type Test func(value string, p Param) bool

// Rule is a named, reusable validation predicate with its error message.
type Rule struct {
	Name    string
	Test    Test
	Message Message
	// Key is the translation key of the message. Empty for rules that are not translated.
	Key string
}

// Set is a group of rules keyed by name, used for form-local custom rules.
type Set map[string]Rule

// Lookup resolves rule names.
type Lookup interface {
	Lookup(name string) (Rule, bool)
}

// Catalog is a mutable, goroutine-safe rule registry.
type Catalog struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewCatalog returns a catalog holding the given rules.
// Later rules with the same name overwrite earlier ones.
func NewCatalog(rules ...Rule) *Catalog {
	c := &Catalog{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		c.rules[r.Name] = r
	}
	return c
}

// Default returns a new catalog populated with the built-in rules.
func Default() *Catalog {
	return NewCatalog(Builtins()...)
}

// Register inserts r, overwriting any rule with the same name.
func (c *Catalog) Register(r Rule) error {
	if r.Name == "" {
		return ErrEmptyRuleName
	}
	if r.Test == nil {
		return ErrNilTest
	}
	c.mu.Lock()
	c.rules[r.Name] = r
	c.mu.Unlock()
	return nil
}

// Add is shorthand for registering an untranslated rule.
func (c *Catalog) Add(name string, test Test, msg Message) error {
	return c.Register(Rule{Name: name, Test: test, Message: msg})
}

func (c *Catalog) Lookup(name string) (Rule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rules[name]
	return r, ok
}

// Names returns the registered rule names in lexical order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.rules))
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Catalog{rules: maps.Clone(c.rules)}
}

// Overlay returns a view in which custom rules take precedence over the catalog.
// The view reads the catalog live, so rules registered later are visible through it.
func (c *Catalog) Overlay(custom Set) Lookup {
	if len(custom) == 0 {
		return c
	}
	return overlay{custom: maps.Clone(custom), base: c}
}

type overlay struct {
	custom Set
	base   Lookup
}

func (o overlay) Lookup(name string) (Rule, bool) {
	if r, ok := o.custom[name]; ok && r.Test != nil {
		if r.Name == "" {
			r.Name = name
		}
		return r, true
	}
	return o.base.Lookup(name)
}
