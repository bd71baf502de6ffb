package utils

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationErrors maps a field name to what is wrong with it. Returned
// to clients as a 422 body of the form {"errors": {...}}.
type ValidationErrors map[string]string

func (v ValidationErrors) Add(field, message string) {
	if _, taken := v[field]; !taken {
		v[field] = message
	}
}

func (v ValidationErrors) Any() bool {
	return len(v) > 0
}
