package dto

type RegisterRequestDTO struct {
	Login    string `json:"login" example:"chef_maria"`
	Password string `json:"password" example:"secret"`
	Role     string `json:"role,omitempty" example:"cook"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" example:"chef_maria"`
	Password string `json:"password" example:"secret"`
}

type AuthResponseDTO struct {
	Token string `json:"token"`
}
