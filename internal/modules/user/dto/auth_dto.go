package dto

type SignupForm struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}
