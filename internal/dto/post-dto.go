package dto

type PostDTO struct {
	ID     uint64 `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Active bool   `json:"active"`
}
