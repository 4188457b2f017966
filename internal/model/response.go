package model

// ErrorResponse is the standard envelope for error responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the structured error information returned by the API.
type ErrorDetail struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Pagination describes the page a list response covers.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// WaitlistStats are collection-wide counts. They never depend on the filters
// of the request they are returned with.
type WaitlistStats struct {
	Total     int64 `json:"total"`
	Tier1     int64 `json:"tier1"`
	Tier2     int64 `json:"tier2"`
	Tier3     int64 `json:"tier3"`
	Recent24h int64 `json:"recent24h"`
}

// WaitlistListResponse is the payload of GET /api/dashboard/waitlist.
type WaitlistListResponse struct {
	Data       []WaitlistEntry `json:"data"`
	Pagination Pagination      `json:"pagination"`
	Stats      WaitlistStats   `json:"stats"`
}

// AdminResponse wraps a single administrator with a status message.
type AdminResponse struct {
	Admin   *Admin `json:"admin"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is returned by endpoints that only report an outcome.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
