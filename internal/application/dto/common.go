package dto

// ErrorResponse cuerpo de error HTTP. Details lleva los mensajes por campo de la validación.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// IDResponse respuesta de las mutaciones: el ID de la categoría afectada.
type IDResponse struct {
	ID int64 `json:"id"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage"`
}
