package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"goblog/config"
	"goblog/internal/domain/entity"
	"goblog/pkg/credential"
	"goblog/pkg/helpers"
)

// Seeds the admin account and the about page. The admin credential goes
// through the same two-stage chain the login path verifies.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "admin123"
	name := "admin"

	uid := helpers.NextID()
	stored := credential.StoredDigest(uid, credential.ClientDigest(email, password))

	var id string
	err = db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`
			INSERT INTO users (id, email, password, name, image, admin)
			VALUES ($1, $2, $3, $4, $5, TRUE)
		`, uid, email, stored, name, cfg.DefaultUserImage); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		id = uid
		fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
	case err != nil:
		log.Fatalf("failed to check admin: %v", err)
	default:
		fmt.Printf("admin already present: id=%s email=%s\n", id, email)
	}

	// About page lives in the blogs table under a reserved title, hidden
	// from index listings.
	var aboutID string
	err = db.QueryRow(`SELECT id FROM blogs WHERE title = $1`, entity.AboutTitle).Scan(&aboutID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		aboutID = helpers.NextID()
		if _, err := db.Exec(`
			INSERT INTO blogs (id, user_id, user_name, user_image, title, summary, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, aboutID, id, name, cfg.DefaultUserImage, entity.AboutTitle, "about", "Write something about this site."); err != nil {
			log.Fatalf("failed to seed about page: %v", err)
		}
		fmt.Printf("seeded about page: id=%s\n", aboutID)
	case err != nil:
		log.Fatalf("failed to check about page: %v", err)
	default:
		fmt.Printf("about page already present: id=%s\n", aboutID)
	}
}
