package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Oversized headers are truncated.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	lang string
	q    float64
}

func parseAcceptLanguageHeader(header string) []weightedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	var langs []weightedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
				q = f
			}
		}
		langs = append(langs, weightedLang{lang: tag, q: q})
	}
	slices.SortStableFunc(langs, func(a, b weightedLang) int { return cmp.Compare(b.q, a.q) })
	return langs
}

// ParseAcceptLanguage picks the best supported language for an Accept-Language
// header. Exact tags win over base-language matches; q=0 entries are skipped.
func ParseAcceptLanguage(header string, supported []string, fallback string) string {
	if header == "" || len(supported) == 0 {
		return fallback
	}
	normalized := make([]string, len(supported))
	for i, l := range supported {
		normalized[i] = strings.ToLower(l)
	}
	langs := parseAcceptLanguageHeader(header)
	for _, l := range langs {
		if l.q > 0 && slices.Contains(normalized, l.lang) {
			return l.lang
		}
	}
	for _, l := range langs {
		if base, _, ok := strings.Cut(l.lang, "-"); ok && l.q > 0 && slices.Contains(normalized, base) {
			return base
		}
	}
	return fallback
}
