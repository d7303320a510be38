package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptmenow/formvalidation/pkg/rules"
)

func bind(t *testing.T, decl string) []rules.Binding {
	t.Helper()
	bindings, unknown := rules.Bind(rules.ParseTokens(decl), rules.Default())
	require.Empty(t, unknown)
	return bindings
}

func TestParseTokens(t *testing.T) {
	t.Parallel()

	t.Run("names and params", func(t *testing.T) {
		t.Parallel()
		tokens := rules.ParseTokens("required|minLength:8|maxLength:1.5|custom:abc")
		require.Len(t, tokens, 4)

		assert.Equal(t, "required", tokens[0].Name)
		assert.False(t, tokens[0].Param.IsSet())

		assert.Equal(t, "minLength", tokens[1].Name)
		assert.True(t, tokens[1].Param.IsNumber())
		assert.Equal(t, 8, tokens[1].Param.Int())

		assert.Equal(t, 1.5, tokens[2].Param.Float())
		assert.Equal(t, "1.5", tokens[2].Param.String())

		assert.False(t, tokens[3].Param.IsNumber())
		assert.Equal(t, "abc", tokens[3].Param.String())
	})

	t.Run("blank and padded tokens", func(t *testing.T) {
		t.Parallel()
		tokens := rules.ParseTokens(" required || email |")
		require.Len(t, tokens, 2)
		assert.Equal(t, "required", tokens[0].Name)
		assert.Equal(t, "email", tokens[1].Name)
	})

	t.Run("param keeps everything after first colon", func(t *testing.T) {
		t.Parallel()
		tokens := rules.ParseTokens("pattern:a:b")
		require.Len(t, tokens, 1)
		assert.Equal(t, "a:b", tokens[0].Param.String())
	})

	t.Run("empty declaration", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, rules.ParseTokens("   "))
	})
}

func TestBind_UnknownRulesAreSkipped(t *testing.T) {
	t.Parallel()
	bindings, unknown := rules.Bind(rules.ParseTokens("required|nope|email|other"), rules.Default())

	require.Len(t, bindings, 2)
	assert.Equal(t, "required", bindings[0].Name)
	assert.Equal(t, "email", bindings[1].Name)
	assert.Equal(t, []string{"nope", "other"}, unknown)
	assert.True(t, rules.HasBinding(bindings, "email"))
	assert.False(t, rules.HasBinding(bindings, "nope"))
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	t.Parallel()
	bindings := bind(t, "required|email")

	t.Run("empty value reports required", func(t *testing.T) {
		t.Parallel()
		res := rules.Evaluate(bindings, "")
		assert.False(t, res.Valid)
		assert.Equal(t, "required", res.Rule)
		assert.Equal(t, "Este campo es obligatorio", res.Message)
		assert.Equal(t, "validation.required", res.Key)
	})

	t.Run("missing tld fails email", func(t *testing.T) {
		t.Parallel()
		res := rules.Evaluate(bindings, "a@b")
		assert.False(t, res.Valid)
		assert.Equal(t, "email", res.Rule)
		assert.Equal(t, "Ingresa un email válido", res.Message)
	})

	t.Run("valid address", func(t *testing.T) {
		t.Parallel()
		res := rules.Evaluate(bindings, "a@b.com")
		assert.True(t, res.Valid)
		assert.Empty(t, res.Message)
		assert.Empty(t, res.Rule)
	})

	t.Run("later rules are not evaluated", func(t *testing.T) {
		t.Parallel()
		calls := 0
		c := rules.Default()
		require.NoError(t, c.Add("spy", func(string, rules.Param) bool {
			calls++
			return true
		}, rules.Static("spy")))

		chain, _ := rules.Bind(rules.ParseTokens("required|spy"), c)
		rules.Evaluate(chain, "")
		assert.Zero(t, calls)
		rules.Evaluate(chain, "x")
		assert.Equal(t, 1, calls)
	})
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()
	bindings := bind(t, "required|minLength:8|passwordStrong")
	for _, v := range []string{"", "short", "longenough", "Longenough1"} {
		first := rules.Evaluate(bindings, v)
		second := rules.Evaluate(bindings, v)
		assert.Equal(t, first, second, v)
	}
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decl  string
		value string
		valid bool
	}{
		{"required", "x", true},
		{"required", "   ", false},
		{"required", "\t\n", false},
		{"email", "", false},
		{"email", "user@example.com", true},
		{"email", "us er@example.com", false},
		{"email", "user@@example.com", false},
		{"minLength:8", "short", false},
		{"minLength:8", "longenough", true},
		{"minLength:8", "", false},
		{"minLength:3", "ñandú", true},
		{"minLength", "anything", false},
		{"maxLength:5", "", true},
		{"maxLength:5", "hello", true},
		{"maxLength:5", "hello!", false},
		{"password", "12345", false},
		{"password", "123456", true},
		{"passwordStrong", "Abcdefg1", true},
		{"passwordStrong", "abcdefg1", false},
		{"passwordStrong", "ABCDEFG1", false},
		{"passwordStrong", "Abcdefgh", false},
		{"passwordStrong", "Abcde1", false},
		{"phone", "+57 (300) 123-4567", false},
		{"phone", "+57 300-1234", true},
		{"phone", "123456", false},
		{"phone", "300abc1234", false},
		{"name", "José Pérez", true},
		{"name", "  Ñoño  ", true},
		{"name", "J", false},
		{"name", "R2D2", false},
		{"name", strings.Repeat("a", 51), false},
		{"alphanumeric", "user_01", true},
		{"alphanumeric", "ab", false},
		{"alphanumeric", "user-01", false},
	}

	for _, tt := range tests {
		res := rules.Evaluate(bind(t, tt.decl), tt.value)
		assert.Equal(t, tt.valid, res.Valid, "%s(%q)", tt.decl, tt.value)
	}
}

func TestFormattedMessages(t *testing.T) {
	t.Parallel()

	res := rules.Evaluate(bind(t, "minLength:8"), "short")
	assert.Equal(t, "Mínimo 8 caracteres", res.Message)
	assert.Equal(t, "validation.min_length", res.Key)
	assert.Equal(t, "8", res.Param.String())

	res = rules.Evaluate(bind(t, "maxLength:3"), "toolong")
	assert.Equal(t, "Máximo 3 caracteres", res.Message)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("register overwrites", func(t *testing.T) {
		t.Parallel()
		c := rules.Default()
		require.NoError(t, c.Add(rules.Required, func(string, rules.Param) bool { return false }, rules.Static("nope")))

		r, ok := c.Lookup(rules.Required)
		require.True(t, ok)
		assert.Equal(t, "nope", r.Message.Resolve(rules.Param{}))
	})

	t.Run("register validates input", func(t *testing.T) {
		t.Parallel()
		c := rules.NewCatalog()
		assert.ErrorIs(t, c.Add("", func(string, rules.Param) bool { return true }, rules.Static("")), rules.ErrEmptyRuleName)
		assert.ErrorIs(t, c.Add("x", nil, rules.Static("")), rules.ErrNilTest)
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		c := rules.Default()
		clone := c.Clone()
		require.NoError(t, clone.Add("extra", func(string, rules.Param) bool { return true }, rules.Static("")))

		_, ok := c.Lookup("extra")
		assert.False(t, ok)
		assert.Contains(t, clone.Names(), "extra")
	})

	t.Run("overlay shadows catalog", func(t *testing.T) {
		t.Parallel()
		c := rules.Default()
		view := c.Overlay(rules.Set{
			rules.Email: {Test: func(v string, _ rules.Param) bool { return strings.HasSuffix(v, ".org") }, Message: rules.Static("solo .org")},
		})

		r, ok := view.Lookup(rules.Email)
		require.True(t, ok)
		assert.Equal(t, rules.Email, r.Name)
		assert.True(t, r.Test("a@b.org", rules.Param{}))
		assert.False(t, r.Test("a@b.com", rules.Param{}))

		base, _ := c.Lookup(rules.Email)
		assert.True(t, base.Test("a@b.com", rules.Param{}))
	})

	t.Run("overlay sees rules added later", func(t *testing.T) {
		t.Parallel()
		c := rules.Default()
		view := c.Overlay(rules.Set{"local": {Test: func(string, rules.Param) bool { return true }}})
		require.NoError(t, c.Add("late", func(string, rules.Param) bool { return true }, rules.Static("")))

		_, ok := view.Lookup("late")
		assert.True(t, ok)
	})
}

func TestMessage(t *testing.T) {
	t.Parallel()
	static := rules.Static("fixed")
	assert.False(t, static.IsFormatted())
	assert.Equal(t, "fixed", static.Resolve(rules.NumberParam(3)))

	formatted := rules.Formatted(func(p rules.Param) string { return "n=" + p.String() })
	assert.True(t, formatted.IsFormatted())
	assert.Equal(t, "n=3", formatted.Resolve(rules.NumberParam(3)))
	assert.Equal(t, "n=abc", formatted.Resolve(rules.StringParam("abc")))
	assert.Empty(t, rules.Message{}.Resolve(rules.Param{}))
}
