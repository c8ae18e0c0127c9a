package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // timezone resolution must not depend on the host zoneinfo
)

// StoreDriver selects the persistence backend for employees and attendance.
type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StorePostgres StoreDriver = "postgres"
	StoreMongo    StoreDriver = "mongo"
)

// Config is the full process configuration.
type Config struct {
	Server     Server
	Store      Store
	Attendance Attendance
	Log        Log
	Dashboard  Dashboard
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Store captures backend selection and connection settings.
type Store struct {
	Driver        StoreDriver
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

// Attendance captures how attendance days are computed and retained.
type Attendance struct {
	// Location defines calendar-day boundaries for attendance marks.
	Location *time.Location
	// CascadeOnDelete removes an employee's attendance history when the employee is deleted.
	CascadeOnDelete bool
}

// Log captures logger settings.
type Log struct {
	Level  slog.Level
	Format string // "json" | "text"
}

// Dashboard captures settings for the dashboard client commands.
type Dashboard struct {
	APIURL string
}

// Load builds a Config from getenv. A nil getenv reads the process environment.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Config{
		Server: Server{
			Addr:            valueOr(getenv("ROSTER_ADDR"), ":8000"),
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: Store{
			Driver:        StoreDriver(strings.ToLower(valueOr(getenv("ROSTER_STORE"), string(StoreMemory)))),
			DatabaseURL:   getenv("ROSTER_DATABASE_URL"),
			MongoURI:      valueOr(getenv("ROSTER_MONGO_URI"), "mongodb://localhost:27017"),
			MongoDatabase: valueOr(getenv("ROSTER_MONGO_DATABASE"), "roster"),
		},
		Attendance: Attendance{
			CascadeOnDelete: getenv("ROSTER_CASCADE_ATTENDANCE") != "false",
		},
		Log: Log{
			Format: strings.ToLower(valueOr(getenv("ROSTER_LOG_FORMAT"), "json")),
		},
		Dashboard: Dashboard{
			APIURL: strings.TrimRight(valueOr(getenv("ROSTER_API_URL"), "http://localhost:8000"), "/"),
		},
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreMongo:
	case StorePostgres:
		if cfg.Store.DatabaseURL == "" {
			return Config{}, fmt.Errorf("ROSTER_DATABASE_URL is required for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unknown store driver %q: must be one of memory, postgres, mongo", cfg.Store.Driver)
	}

	loc, err := time.LoadLocation(valueOr(getenv("ROSTER_TIMEZONE"), "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("load ROSTER_TIMEZONE: %w", err)
	}
	cfg.Attendance.Location = loc

	if level := getenv("ROSTER_LOG_LEVEL"); level != "" {
		if err := cfg.Log.Level.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse ROSTER_LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
