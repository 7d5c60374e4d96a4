package dto

type StockStatsDTO struct {
	Total      uint64            `json:"total"`
	ByState    map[string]uint64 `json:"by_state"`
	ByLocation map[string]uint64 `json:"by_location"`
}
