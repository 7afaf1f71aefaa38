package dto

// ErrorResponse cuerpo de error HTTP. El cliente lee message (o detail).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse respuesta de / y /health.
type StatusResponse struct {
	Status  string   `json:"status"`
	Service string   `json:"service,omitempty"`
	Routes  []string `json:"routes,omitempty"`
}
