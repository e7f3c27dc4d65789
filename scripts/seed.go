package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TEJASTATODE/saas-notes/config"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/store"
)

// Seed provisions the two demo tenants and their admin/member accounts.
func Seed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}

	st := store.NewGorm(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	ctx := context.Background()

	tenants := []models.Tenant{
		{Slug: "acme", Name: "Acme", Plan: models.PlanFree, NoteLimit: models.DefaultNoteLimit},
		{Slug: "globex", Name: "Globex", Plan: models.PlanFree, NoteLimit: models.DefaultNoteLimit},
	}
	for i := range tenants {
		if existing, err := st.FindTenantBySlug(ctx, tenants[i].Slug); err == nil {
			tenants[i] = *existing
			continue
		}
		if err := st.CreateTenant(ctx, &tenants[i]); err != nil {
			log.Fatalf("tenant seed error: %v", err)
		}
	}
	log.Println("tenants created")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("password hashing error: %v", err)
	}

	users := []models.User{
		{Email: "admin@acme.test", Role: models.AdminRole, TenantID: tenants[0].ID},
		{Email: "user@acme.test", Role: models.MemberRole, TenantID: tenants[0].ID},
		{Email: "admin@globex.test", Role: models.AdminRole, TenantID: tenants[1].ID},
		{Email: "user@globex.test", Role: models.MemberRole, TenantID: tenants[1].ID},
	}
	for i := range users {
		users[i].Password = string(hash)
		if err := st.CreateUser(ctx, &users[i]); err != nil {
			if err == store.ErrEmailTaken {
				continue
			}
			log.Fatalf("user seed error: %v", err)
		}
	}
	log.Println("users created")
	log.Println("seeding complete")
}
