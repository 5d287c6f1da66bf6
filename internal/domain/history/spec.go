package history

import (
	"regexp"
	"strings"
	"time"
)

var (
	quotedKeywordRe = regexp.MustCompile(`"([^"]+)"`)
	aboutKeywordRe  = regexp.MustCompile(`(?i)\babout\s+(.+?)(?:\s+since\b|$)`)
	sinceDateRe     = regexp.MustCompile(`(?i)\bsince\s+(\d{4}-\d{2}-\d{2})`)
)

// historyPhrases are the ways a query names the history itself. A captured
// "about <topic>" that is just one of these ("tell me about my history") is
// not a keyword filter; dropping it keeps the extraction unfiltered. A quoted
// keyword is always honored.
var historyPhrases = map[string]struct{}{
	"history":          {},
	"browser history":  {},
	"browsing history": {},
	"visited sites":    {},
	"recent tabs":      {},
	"what did i visit": {},
}

func isHistoryPhrase(keyword string) bool {
	k := strings.ToLower(keyword)
	k = strings.TrimPrefix(k, "my ")
	_, ok := historyPhrases[k]
	return ok
}

// ParseQuerySpec derives extraction filters from free-form query text.
// Recognized forms: a quoted keyword, "about <topic>", "since YYYY-MM-DD",
// and the relative markers "today" / "yesterday". Anything unrecognized
// yields a zero spec, which extracts everything.
func ParseQuerySpec(query string, now time.Time) QuerySpec {
	var spec QuerySpec

	if m := quotedKeywordRe.FindStringSubmatch(query); m != nil {
		spec.Keyword = m[1]
	} else if m := aboutKeywordRe.FindStringSubmatch(query); m != nil {
		if kw := strings.TrimRight(strings.TrimSpace(m[1]), "?.!"); !isHistoryPhrase(kw) {
			spec.Keyword = kw
		}
	}

	lowered := strings.ToLower(query)
	switch {
	case sinceDateRe.MatchString(query):
		m := sinceDateRe.FindStringSubmatch(query)
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			spec.Since = t
		}
	case strings.Contains(lowered, "yesterday"):
		spec.Since = midnight(now).AddDate(0, 0, -1)
	case strings.Contains(lowered, "today"):
		spec.Since = midnight(now)
	}

	return spec
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
