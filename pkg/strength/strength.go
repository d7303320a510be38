package strength

import (
	"regexp"
	"unicode/utf8"
)

// Level classifies a score.
type Level string

const (
	LevelNone   Level = "none"
	LevelWeak   Level = "weak"
	LevelFair   Level = "fair"
	LevelGood   Level = "good"
	LevelStrong Level = "strong"
)

// Criterion is one weighted check contributing to the score.
type Criterion struct {
	// Key identifies the suggestion for translation (strength.<key>).
	Key        string
	Points     int
	Suggestion string
	met        func(string) bool
}

var (
	upper  = regexp.MustCompile(`[A-Z]`)
	lower  = regexp.MustCompile(`[a-z]`)
	digit  = regexp.MustCompile(`\d`)
	symbol = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>?]`)
)

// Criteria in evaluation order. The points add up to 100.
var Criteria = []Criterion{
	{Key: "length", Points: 25, Suggestion: "Al menos 8 caracteres", met: func(s string) bool { return utf8.RuneCountInString(s) >= 8 }},
	{Key: "uppercase", Points: 25, Suggestion: "Incluir mayúsculas", met: upper.MatchString},
	{Key: "lowercase", Points: 25, Suggestion: "Incluir minúsculas", met: lower.MatchString},
	{Key: "digit", Points: 15, Suggestion: "Incluir números", met: digit.MatchString},
	{Key: "symbol", Points: 10, Suggestion: "Incluir símbolos", met: symbol.MatchString},
}

// Result is the outcome of Evaluate.
type Result struct {
	Score int
	Level Level
	// Suggestions lists the unmet criteria in evaluation order.
	Suggestions []string
	// Missing holds the keys of the unmet criteria, aligned with Suggestions.
	Missing []string
}

// Evaluate scores password. An empty password yields LevelNone with no suggestions.
func Evaluate(password string) Result {
	if password == "" {
		return Result{Level: LevelNone}
	}

	res := Result{}
	for _, c := range Criteria {
		if c.met(password) {
			res.Score += c.Points
			continue
		}
		res.Suggestions = append(res.Suggestions, c.Suggestion)
		res.Missing = append(res.Missing, c.Key)
	}
	res.Level = Classify(res.Score)
	return res
}

// Classify maps a score to its level.
func Classify(score int) Level {
	switch {
	case score < 25:
		return LevelWeak
	case score < 50:
		return LevelFair
	case score < 75:
		return LevelGood
	default:
		return LevelStrong
	}
}
