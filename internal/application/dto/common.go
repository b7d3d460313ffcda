package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"` // FETCH_ERROR, WRITE_ERROR... solo errores del libro
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// GuardStateResponse estado de un flujo de confirmación (borrado de usuario, reinicio de propinas).
type GuardStateResponse struct {
	State  string `json:"state"` // IDLE | PENDING_CONFIRM | PENDING_PHRASE_MATCH
	Target string `json:"target,omitempty"`
	Busy   bool   `json:"busy"`
	// Phrase frase que el operador debe escribir, solo en PENDING_PHRASE_MATCH.
	Phrase string `json:"phrase,omitempty"`
}

// ConfirmRequest frase tecleada por el operador.
type ConfirmRequest struct {
	Phrase string `json:"phrase" validate:"required"`
}
