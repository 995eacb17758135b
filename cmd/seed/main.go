package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/medisync/user-service/config"
	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/infrastructure/mongodb"
	"github.com/medisync/user-service/pkg/helpers"
)

var defaultRoles = []string{"ADMIN", "USER_REPORT", "USER_SOLICITUD", "USER_AUDIT", "PATIENT"}

// Seeds the default roles and an initial admin account. Safe to run more
// than once: existing documents are left untouched.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	roleRepo := mongodb.NewRoleRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	for _, name := range defaultRoles {
		existing, err := roleRepo.GetByName(ctx, name)
		if err != nil {
			log.Fatalf("lookup role %s: %v", name, err)
		}
		if existing != nil {
			continue
		}
		role := &entity.Role{Name: name, Active: true}
		if err := roleRepo.Save(ctx, role); err != nil {
			log.Fatalf("seed role %s: %v", name, err)
		}
		logger.Infof("seeded role %s", name)
	}

	existing, err := userRepo.GetByUsername(ctx, "admin")
	if err != nil {
		log.Fatalf("lookup admin user: %v", err)
	}
	if existing != nil {
		logger.Info("admin user already present, nothing to do")
		return
	}

	adminRole, err := roleRepo.GetByName(ctx, "ADMIN")
	if err != nil || adminRole == nil {
		log.Fatalf("ADMIN role not found after seeding: %v", err)
	}

	hash, err := helpers.HashPassword("admin123")
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := &entity.User{
		Username: "admin",
		Password: hash,
		Role:     *adminRole,
		Active:   true,
	}
	if err := userRepo.Save(ctx, admin); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	logger.Info("seeded admin user")
}
