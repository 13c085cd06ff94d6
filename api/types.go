package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	skillHandler   skillHandler
	profileHandler profileHandler
	uploadHandler  uploadHandler
	authHandler    authHandler
	healthHandler  healthHandler
}

// mutationResponse is the envelope every mutation returns on success.
// Failures go through Responder.WriteError with success=false.
type mutationResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
