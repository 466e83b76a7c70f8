package dto

// LoginRequest credenciales del operario del dispositivo.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido para el dispositivo.
type LoginResponse struct {
	Token    string `json:"token"`
	Operator string `json:"operator"`
	Email    string `json:"email"`
}
