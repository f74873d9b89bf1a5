package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2"` // optional confirmation, must match Password when sent
}

// LoginRequest: payload for user login. Presence is checked by the handler so
// that missing fields produce a single detail message.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse: returned by register and login
type AuthResponse struct {
	Response string `json:"response"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// DetailResponse carries a single human readable message.
type DetailResponse struct {
	Detail string `json:"detail"`
}
