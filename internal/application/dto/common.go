package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []FieldDetail `json:"details,omitempty"`
}

// FieldDetail error de un campo puntual dentro de una validación acumulada.
type FieldDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
