package types

// Payload is the single response shape every route returns. Failures are
// carried as text in Response, never as an HTTP error status.
type Payload struct {
	Response string   `json:"response"`
	Options  []string `json:"options,omitempty"`
}

// Text wraps a plain message in a Payload
func Text(msg string) Payload {
	return Payload{Response: msg}
}
