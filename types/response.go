package types

// APIResponse is the envelope for error replies. Successful replies carry the
// resource itself so existing clients can decode it directly.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
