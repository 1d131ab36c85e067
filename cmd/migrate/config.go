package main

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultMigrationsDir = "db/migrations"

// loadEnvFiles reads .env then .env.local. godotenv never overrides
// variables already set by the runtime.
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return defaultMigrationsDir
}
