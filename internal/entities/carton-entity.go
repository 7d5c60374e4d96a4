package entities

import "time"

// Carton — партия концентраторов, поступившая от оператора.
// После создания не меняется, кроме производного счётчика аппаратов.
type Carton struct {
	ID            uint64    `db:"id"`
	Number        string    `db:"number"`
	Operator      string    `db:"operator"`
	IsRefurbished bool      `db:"is_refurbished"`
	CreatedAt     time.Time `db:"created_at"`
}
