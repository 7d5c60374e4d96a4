package authz

import (
	"fmt"

	"concentrator-system/internal/entities"
)

// Profile — закрытый набор профилей пользователей. Каждая операция сервиса
// переходов сверяется с профилем, а не со строкой из запроса.
type Profile string

const (
	ProfileWarehouse   Profile = "warehouse"
	ProfileNorthOrder  Profile = "north_order"
	ProfileNorthField  Profile = "north_field"
	ProfileCenterOrder Profile = "center_order"
	ProfileCenterField Profile = "center_field"
	ProfileSouthOrder  Profile = "south_order"
	ProfileSouthField  Profile = "south_field"
	ProfileLab         Profile = "lab"
	ProfileAdmin       Profile = "admin"
)

var allProfiles = map[Profile]struct{}{
	ProfileWarehouse:   {},
	ProfileNorthOrder:  {},
	ProfileNorthField:  {},
	ProfileCenterOrder: {},
	ProfileCenterField: {},
	ProfileSouthOrder:  {},
	ProfileSouthField:  {},
	ProfileLab:         {},
	ProfileAdmin:       {},
}

func ParseProfile(s string) (Profile, error) {
	p := Profile(s)
	if _, ok := allProfiles[p]; !ok {
		return "", fmt.Errorf("неизвестный профиль: %q", s)
	}
	return p, nil
}

// Region возвращает БО, закреплённую за профилем
// (LocationNone для склада, лаборатории и администратора).
func (p Profile) Region() entities.Location {
	switch p {
	case ProfileNorthOrder, ProfileNorthField:
		return entities.LocationNorth
	case ProfileCenterOrder, ProfileCenterField:
		return entities.LocationCenter
	case ProfileSouthOrder, ProfileSouthField:
		return entities.LocationSouth
	default:
		return entities.LocationNone
	}
}

func (p Profile) IsAdmin() bool     { return p == ProfileAdmin }
func (p Profile) IsWarehouse() bool { return p == ProfileWarehouse }
func (p Profile) IsLab() bool       { return p == ProfileLab }

func (p Profile) IsRegionalOrder() bool {
	return p == ProfileNorthOrder || p == ProfileCenterOrder || p == ProfileSouthOrder
}

func (p Profile) IsFieldTeam() bool {
	return p == ProfileNorthField || p == ProfileCenterField || p == ProfileSouthField
}

// Actor — аутентифицированный пользователь, выполняющий операцию.
type Actor struct {
	UserID  uint64
	Login   string
	Profile Profile
}

func (a Actor) CanReceive() bool {
	return a.Profile.IsWarehouse() || a.Profile.IsAdmin()
}

func (a Actor) CanOrder() bool {
	return a.Profile.IsRegionalOrder() || a.Profile.IsAdmin()
}

func (a Actor) CanInstallRemove() bool {
	return a.Profile.IsFieldTeam() || a.Profile.IsAdmin()
}

func (a Actor) CanTest() bool {
	return a.Profile.IsLab() || a.Profile.IsAdmin()
}

func (a Actor) Region() entities.Location {
	return a.Profile.Region()
}
