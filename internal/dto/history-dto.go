package dto

type HistoryEntryDTO struct {
	ID          uint64  `json:"id"`
	Action      string  `json:"action"`
	UserLogin   *string `json:"user_login"`
	OldState    string  `json:"old_state"`
	NewState    string  `json:"new_state"`
	OldLocation string  `json:"old_location"`
	NewLocation string  `json:"new_location"`
	PostCode    string  `json:"post_code"`
	Comment     string  `json:"comment"`
	CreatedAt   string  `json:"created_at"`
}
