package rules

import (
	"strconv"
	"strings"
)

type paramKind uint8

const (
	paramUnset paramKind = iota
	paramNumber
	paramString
)

// Param is a rule parameter resolved once at registration time.
type Param struct {
	kind paramKind
	num  float64
	raw  string
}

// ParseParam resolves a raw token parameter. Numeric-looking input becomes a number,
// anything else stays a string. An empty raw value yields an unset Param.
func ParseParam(raw string) Param {
	if raw == "" {
		return Param{}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return Param{kind: paramNumber, num: f, raw: raw}
	}
	return Param{kind: paramString, raw: raw}
}

// NumberParam returns a numeric Param.
func NumberParam(f float64) Param {
	return Param{kind: paramNumber, num: f, raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// StringParam returns a string Param. An empty string yields an unset Param.
func StringParam(s string) Param {
	if s == "" {
		return Param{}
	}
	return Param{kind: paramString, raw: s}
}

func (p Param) IsSet() bool    { return p.kind != paramUnset }
func (p Param) IsNumber() bool { return p.kind == paramNumber }

// Float returns the numeric value, or 0 for non-numeric params.
func (p Param) Float() float64 { return p.num }

// Int returns the numeric value truncated to int, or 0 for non-numeric params.
func (p Param) Int() int { return int(p.num) }

// String renders numbers in their shortest form ("8", "1.5") and strings verbatim.
func (p Param) String() string {
	switch p.kind {
	case paramNumber:
		return strconv.FormatFloat(p.num, 'f', -1, 64)
	case paramString:
		return p.raw
	default:
		return ""
	}
}

// Raw returns the parameter exactly as it was declared.
func (p Param) Raw() string { return p.raw }
