package dto

// DTO пяти операций сервиса переходов. Поля результатов повторяют
// сводки, которые отдаёт сервис: контроллер их не обогащает.

type ReceiveRequestDTO struct {
	CartonNumber string `json:"carton_number" validate:"required"`
}

type ReceiveResultDTO struct {
	Carton     string   `json:"carton"`
	NbReceived int      `json:"nb_received"`
	Serials    []string `json:"serials"`
}

type OrderRequestDTO struct {
	Operator string `json:"operator" validate:"required"`
	// Count — количество коробок; коробки не дробятся.
	Count int `json:"count" validate:"required,min=1"`
	// Регион обязателен только для администратора: у остальных
	// профилей БО выводится из самого профиля.
	Region string `json:"region,omitempty" validate:"omitempty,oneof=North Center South"`
}

type OrderResultDTO struct {
	Cartons    []string `json:"cartons"`
	TotalUnits int      `json:"total_units"`
	Region     string   `json:"region"`
}

type InstallRequestDTO struct {
	Serial string `json:"serial" validate:"required"`
	PostID uint64 `json:"post_id" validate:"required"`
}

type InstallResultDTO struct {
	Serial   string `json:"serial"`
	PostCode string `json:"post_code"`
	State    string `json:"state"`
}

type RemoveRequestDTO struct {
	PostID uint64 `json:"post_id" validate:"required"`
	Serial string `json:"serial" validate:"required"`
}

type RemoveResultDTO struct {
	Serial       string `json:"serial"`
	PreviousPost string `json:"previous_post"`
	Destination  string `json:"destination"`
}

type TestRequestDTO struct {
	Serial string `json:"serial" validate:"required"`
	Passed *bool  `json:"passed" validate:"required"`
}

type TestResultDTO struct {
	Serial string `json:"serial"`
	Result string `json:"result"`
}
