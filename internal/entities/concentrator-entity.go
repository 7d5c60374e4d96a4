package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// State — состояние концентратора в жизненном цикле.
// in_delivery -> in_stock -> installed -> pending_test -> in_stock / out_of_service
type State string

const (
	StateInDelivery     State = "in_delivery"
	StateInStock        State = "in_stock"
	StateInstalled      State = "installed"
	StatePendingTest    State = "pending_test"
	StateAwaitingRefurb State = "awaiting_refurb"
	StateOutOfService   State = "out_of_service"
)

// Location — текущее место/закрепление концентратора.
// Пустая строка означает «нигде» (списанные аппараты).
type Location string

const (
	LocationWarehouse Location = "Warehouse"
	LocationNorth     Location = "North"
	LocationCenter    Location = "Center"
	LocationSouth     Location = "South"
	LocationLab       Location = "Lab"
	LocationNone      Location = ""
)

// Regions — операционные базы, которым принадлежат посты.
var Regions = []Location{LocationNorth, LocationCenter, LocationSouth}

func (l Location) IsRegion() bool {
	for _, r := range Regions {
		if l == r {
			return true
		}
	}
	return false
}

type Concentrator struct {
	ID             uint64       `db:"id"`
	Serial         string       `db:"serial"`
	CartonID       null.Uint64  `db:"carton_id"`
	Operator       string       `db:"operator"`
	State          State        `db:"state"`
	Location       Location     `db:"location"`
	PostID         null.Uint64  `db:"post_id"`
	Latitude       null.Float64 `db:"latitude"`
	Longitude      null.Float64 `db:"longitude"`
	AssignedAt     null.Time    `db:"assigned_at"`
	InstalledAt    null.Time    `db:"installed_at"`
	StateChangedAt time.Time    `db:"state_changed_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}
