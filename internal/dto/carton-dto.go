package dto

type CartonDTO struct {
	ID            uint64 `json:"id"`
	Number        string `json:"number"`
	Operator      string `json:"operator"`
	IsRefurbished bool   `json:"is_refurbished"`
	UnitsCount    uint64 `json:"units_count"`
	CreatedAt     string `json:"created_at"`
}
