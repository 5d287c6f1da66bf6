package types

// SearchRequest is the body of a /search call. HistoryAccess lets the UI
// pass an explicit grant along with the query.
type SearchRequest struct {
	Query         string `json:"query" binding:"required"`
	HistoryAccess *bool  `json:"historyAccess,omitempty"`
}

// PrivacyRequest carries the user's answer to an authorization prompt.
type PrivacyRequest struct {
	Option string `json:"option" binding:"required"`
}
