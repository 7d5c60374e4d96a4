package seeders

import (
	"context"
	"fmt"

	"concentrator-system/internal/authz"
	"concentrator-system/pkg/config"
	"concentrator-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedUser struct {
	Login    string
	Fio      string
	Profile  authz.Profile
	Password string
}

var defaultUsers = []seedUser{
	{Login: "warehouse", Fio: "Кладовщик Склад", Profile: authz.ProfileWarehouse, Password: "warehouse123"},
	{Login: "north_order", Fio: "Заказ Север", Profile: authz.ProfileNorthOrder, Password: "north123"},
	{Login: "north_field", Fio: "Бригада Север", Profile: authz.ProfileNorthField, Password: "north123"},
	{Login: "center_order", Fio: "Заказ Центр", Profile: authz.ProfileCenterOrder, Password: "center123"},
	{Login: "center_field", Fio: "Бригада Центр", Profile: authz.ProfileCenterField, Password: "center123"},
	{Login: "south_order", Fio: "Заказ Юг", Profile: authz.ProfileSouthOrder, Password: "south123"},
	{Login: "south_field", Fio: "Бригада Юг", Profile: authz.ProfileSouthField, Password: "south123"},
	{Login: "lab", Fio: "Лаборатория", Profile: authz.ProfileLab, Password: "lab123"},
}

// SeedUsers создаёт по пользователю на каждый профиль и администратора
// из конфигурации. Существующие логины не трогаются.
func SeedUsers(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	users := append([]seedUser{}, defaultUsers...)
	users = append(users, seedUser{
		Login:    cfg.Seed.AdminLogin,
		Fio:      "Администратор",
		Profile:  authz.ProfileAdmin,
		Password: cfg.Seed.AdminPassword,
	})

	for _, u := range users {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (login, fio, email, password_hash, profile)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (login) DO NOTHING`,
			u.Login, u.Fio, u.Login+"@example.com", hash, string(u.Profile))
		if err != nil {
			return fmt.Errorf("не удалось создать пользователя %s: %w", u.Login, err)
		}
	}
	return nil
}
