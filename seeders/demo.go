package seeders

import (
	"context"
	"fmt"

	"concentrator-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedPost struct {
	Code   string
	Name   string
	Region entities.Location
}

var demoPosts = []seedPost{
	{Code: "P-N01", Name: "Пост Север 01", Region: entities.LocationNorth},
	{Code: "P-N02", Name: "Пост Север 02", Region: entities.LocationNorth},
	{Code: "P-C01", Name: "Пост Центр 01", Region: entities.LocationCenter},
	{Code: "P-C02", Name: "Пост Центр 02", Region: entities.LocationCenter},
	{Code: "P-S01", Name: "Пост Юг 01", Region: entities.LocationSouth},
	{Code: "P-S02", Name: "Пост Юг 02", Region: entities.LocationSouth},
}

type seedCarton struct {
	Number   string
	Operator string
	State    entities.State
	Location entities.Location
	Units    int
}

var demoCartons = []seedCarton{
	{Number: "CRT-1001", Operator: "Objenious", State: entities.StateInDelivery, Location: entities.LocationNone, Units: 10},
	{Number: "CRT-1002", Operator: "Objenious", State: entities.StateInStock, Location: entities.LocationWarehouse, Units: 10},
	{Number: "CRT-2001", Operator: "Orange", State: entities.StateInStock, Location: entities.LocationWarehouse, Units: 5},
	{Number: "CRT-2002", Operator: "Orange", State: entities.StateInStock, Location: entities.LocationNorth, Units: 5},
}

// SeedDemoData наполняет пустую базу демонстрационным парком.
func SeedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range demoPosts {
		_, err := pool.Exec(ctx, `
			INSERT INTO posts (code, name, region, active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (code) DO NOTHING`,
			p.Code, p.Name, string(p.Region))
		if err != nil {
			return fmt.Errorf("не удалось создать пост %s: %w", p.Code, err)
		}
	}

	for _, k := range demoCartons {
		var cartonID uint64
		err := pool.QueryRow(ctx, `
			INSERT INTO cartons (number, operator)
			VALUES ($1, $2)
			ON CONFLICT (number) DO UPDATE SET operator = EXCLUDED.operator
			RETURNING id`,
			k.Number, k.Operator).Scan(&cartonID)
		if err != nil {
			return fmt.Errorf("не удалось создать коробку %s: %w", k.Number, err)
		}

		for i := 1; i <= k.Units; i++ {
			serial := fmt.Sprintf("%s-U%03d", k.Number, i)
			_, err := pool.Exec(ctx, `
				INSERT INTO concentrators (serial, carton_id, operator, state, location, assigned_at)
				VALUES ($1, $2, $3, $4, $5, CASE WHEN $6 THEN NOW() END)
				ON CONFLICT (serial) DO NOTHING`,
				serial, cartonID, k.Operator, string(k.State), string(k.Location), k.Location.IsRegion())
			if err != nil {
				return fmt.Errorf("не удалось создать аппарат %s: %w", serial, err)
			}
		}
	}
	return nil
}
