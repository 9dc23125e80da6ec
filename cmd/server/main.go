package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "bunganutz/internal/adapters/email"
	web "bunganutz/internal/adapters/http"
	"bunganutz/internal/adapters/storage"
	bedassignmentStore "bunganutz/internal/adapters/storage/bedassignment"
	mealplanStore "bunganutz/internal/adapters/storage/mealplan"
	memberStore "bunganutz/internal/adapters/storage/member"
	stayStore "bunganutz/internal/adapters/storage/stay"
	"bunganutz/internal/adapters/weather"
	"bunganutz/internal/application/orchestrators"
	"bunganutz/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Wrap DB with slow-query logging
	timedDB := storage.NewTimedDB(db)

	mStore := memberStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		MemberStore:     mStore,
		StayStore:       stayStore.NewSQLiteStore(timedDB),
		BoardStore:      bedassignmentStore.NewSQLiteStore(timedDB),
		AssignmentStore: mealplanStore.NewSQLiteStore(timedDB),
		DayGuestStore:   mealplanStore.NewSQLiteAttendanceStore(timedDB),
	}

	// Seed the founding family roster (idempotent)
	seedDeps := orchestrators.SeedMembersDeps{MemberStore: mStore}
	if err := orchestrators.ExecuteSeedMembers(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed roster: %v", err)
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.ResendFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.Env == "production" {
			log.Println("WARNING: BUNGANUT_RESEND_KEY is not set, stay confirmations are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set BUNGANUT_RESEND_KEY for real delivery)")
		}
	}

	// Configure the forecast widget
	if cfg.WeatherKey != "" {
		web.SetWeather(weather.NewOpenWeatherProvider(weather.DefaultBaseURL, cfg.WeatherKey), cfg.WeatherLat, cfg.WeatherLon)
		log.Println("Forecast provider configured (OpenWeatherMap)")
	} else {
		web.SetWeather(weather.NewNoopProvider(), cfg.WeatherLat, cfg.WeatherLon)
		log.Println("Forecast provider configured (noop, set BUNGANUT_WEATHER_KEY for real forecasts)")
	}

	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("Bunganut %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
