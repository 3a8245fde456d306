package models

// Error is the body of every non-2xx response. Detail carries the underlying
// store error verbatim and is left out for client errors.
type Error struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}
