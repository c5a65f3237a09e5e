package service

import (
	"context"
	"errors"
	"testing"

	"github.com/habitloop/backend/internal/models"
)

func TestUpdateTimezone(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, "UTC")

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})

	updated, err := service.UpdateTimezone(ctx, user.ID, "Europe/Amsterdam")
	if err != nil {
		t.Fatalf("UpdateTimezone failed: %v", err)
	}
	if updated.Timezone != "Europe/Amsterdam" {
		t.Errorf("Expected timezone Europe/Amsterdam, got %s", updated.Timezone)
	}
}

func TestUpdateTimezone_RejectsUnknownZone(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, "UTC")

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})

	_, err := service.UpdateTimezone(ctx, user.ID, "Mars/Olympus_Mons")
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("Expected ErrInvalidTimezone, got %v", err)
	}
}

func TestGetConfiguration_DefaultsTimezone(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, "Europe/Berlin")

	user, _ := userRepo.Create(ctx, &models.User{})

	got, err := service.GetConfiguration(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetConfiguration failed: %v", err)
	}
	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Expected configured default timezone, got %q", got.Timezone)
	}
}

func TestGetConfiguration_UnknownUser(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(newMockUserRepository(), "UTC")

	_, err := service.GetConfiguration(ctx, "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
