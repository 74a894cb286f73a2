package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Request Examples ---

// CalculationRequestDoc documents the calculation request body.
type CalculationRequestDoc struct {
	SourcingCost       float64 `json:"sourcing_cost" example:"15000"`
	ActualWeight       float64 `json:"actual_weight" example:"1.2"`
	Length             float64 `json:"length" example:"20"`
	Width              float64 `json:"width" example:"15"`
	Height             float64 `json:"height" example:"10"`
	DestinationCountry string  `json:"destination_country" example:"US"`
	OriginCountry      string  `json:"origin_country" example:"JP"`
	TariffCode         string  `json:"tariff_code" example:"8518302000"`
	StoreTier          string  `json:"store_tier" example:"premium"`
	Category           string  `json:"category" example:"electronics"`
}
