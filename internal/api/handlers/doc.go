package handlers

// ErrorResponse is the error body for failures reported outside Huma's
// problem responses: middleware rejections and recovered panics.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"something went wrong"`
}

// StatusResponse is the body returned by the health and readiness probes.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
