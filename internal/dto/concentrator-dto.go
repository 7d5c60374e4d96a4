package dto

type ConcentratorListDTO struct {
	ID             uint64   `json:"id"`
	Serial         string   `json:"serial"`
	Operator       string   `json:"operator"`
	State          string   `json:"state"`
	Location       string   `json:"location"`
	CartonNumber   *string  `json:"carton_number"`
	PostCode       *string  `json:"post_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	StateChangedAt string   `json:"state_changed_at"`
}

type ConcentratorDetailDTO struct {
	ConcentratorListDTO
	AssignedAt  string `json:"assigned_at"`
	InstalledAt string `json:"installed_at"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
