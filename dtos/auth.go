package dtos

type RegisterInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=20"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}
