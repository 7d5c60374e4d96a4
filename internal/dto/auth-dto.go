package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserDTO struct {
	ID      uint64 `json:"id"`
	Login   string `json:"login"`
	Fio     string `json:"fio"`
	Email   string `json:"email"`
	Profile string `json:"profile"`
	Region  string `json:"region"`
}
