package repositories

import (
	"fmt"
	"time"
)

// pgTimestamp форматирует timestamp из БД в строку для DTO.
// NULL превращается в пустую строку.
type pgTimestamp struct {
	t     time.Time
	valid bool
}

type pgNullTimestamp = pgTimestamp

func (p *pgTimestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		p.t, p.valid = time.Time{}, false
		return nil
	case time.Time:
		p.t, p.valid = v, true
		return nil
	default:
		return fmt.Errorf("неподдерживаемый тип для timestamp: %T", src)
	}
}

func (p pgTimestamp) String() string {
	if !p.valid || p.t.IsZero() {
		return ""
	}
	return p.t.Format("2006-01-02 15:04:05")
}
