package model

// DecodeError records a decode failure for one captured response line.
type DecodeError struct {
	Function string `json:"function"`
	Category string `json:"category"`
	Meta     string `json:"meta,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Error    string `json:"error"`
}
