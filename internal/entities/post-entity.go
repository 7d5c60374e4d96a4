package entities

// Post — стационарный пост установки, привязан ровно к одной БО.
// На посту может стоять не более одного концентратора в состоянии installed —
// инвариант обеспечивает сервис переходов, а не схема.
type Post struct {
	ID     uint64   `db:"id"`
	Code   string   `db:"code"`
	Name   string   `db:"name"`
	Region Location `db:"region"`
	Active bool     `db:"active"`
}
