package utils

import (
	"fmt"
	"time"

	"github.com/tamohar/foundationbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// NewSeedAdmin builds the admin record inserted on first boot when no user
// with that email exists yet.
func NewSeedAdmin(seed AdminSeed) (*models.User, error) {
	email := NormalizeEmail(seed.Email)
	if email == "" || seed.Password == "" {
		return nil, fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(seed.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Admin"
	}

	now := time.Now().UTC()
	return &models.User{
		ID:           bson.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
