package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/avolkov/shop-api/config"
	"github.com/avolkov/shop-api/pkg/helpers"
)

// Seeds an active admin account so the admin-only endpoints are usable on a
// fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	login := "admin"
	password := "admin12345"

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM credentials WHERE login = $1)`, login).Scan(&exists); err != nil {
		log.Fatalf("failed to check existing admin: %v", err)
	}
	if exists {
		log.Printf("admin login %q already seeded, nothing to do", login)
		return
	}

	hasher := helpers.NewPasswordHasher(cfg.PasswordHashAlgorithm, cfg.PasswordHashIterations, cfg.PasswordSaltLength)
	hash, err := hasher.Seal(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (role, active)
		VALUES ('admin', TRUE)
		RETURNING id
	`).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO credentials (user_id, login, password_hash)
		VALUES ($1, $2, $3)
	`, id, login, hash); err != nil {
		log.Fatalf("failed to seed credentials: %v", err)
	}

	fmt.Printf("seeded admin: id=%s login=%s password=%s\n", id, login, password)
}
