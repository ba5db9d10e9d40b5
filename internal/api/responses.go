package api

// ErrorResponse is the generic error payload returned by every handler.
type ErrorResponse struct {
	Error string `json:"error" example:"booking not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
