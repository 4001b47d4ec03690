package models

// ErrorResponse is the JSON body returned by the sync backend for every
// non-2xx outcome.
type ErrorResponse struct {
	Error string `json:"error"`
}
