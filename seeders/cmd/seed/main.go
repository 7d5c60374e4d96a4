package main

import (
	"context"
	"flag"
	"log"

	"concentrator-system/pkg/config"
	"concentrator-system/pkg/database/postgresql"
	"concentrator-system/seeders"
)

func main() {
	seedUsers := flag.Bool("users", false, "создать пользователей по профилям")
	seedDemo := flag.Bool("demo", false, "создать демонстрационный парк")
	seedAll := flag.Bool("all", false, "выполнить все сидеры")
	flag.Parse()

	if !*seedUsers && !*seedDemo && !*seedAll {
		log.Fatal("укажите хотя бы один флаг: -users, -demo или -all")
	}

	cfg := config.New()
	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, "migrations"); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	ctx := context.Background()

	if *seedUsers || *seedAll {
		if err := seeders.SeedUsers(ctx, pool, cfg); err != nil {
			log.Fatalf("Ошибка сидера пользователей: %v", err)
		}
		log.Println("✅ Пользователи созданы")
	}

	if *seedDemo || *seedAll {
		if err := seeders.SeedDemoData(ctx, pool); err != nil {
			log.Fatalf("Ошибка сидера демо-данных: %v", err)
		}
		log.Println("✅ Демо-данные созданы")
	}
}
