package router

import "strings"

// historyKeywords marks a query as history-related by containment. Kept as a
// plain ordered list; intent detection here never needs more than that.
var historyKeywords = []string{
	"browser history",
	"visited sites",
	"recent tabs",
	"history",
	"my history",
	"what did i visit",
}

// IsHistoryQuery reports whether the query references browsing history.
func IsHistoryQuery(query string) bool {
	lowered := strings.ToLower(query)
	for _, kw := range historyKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
