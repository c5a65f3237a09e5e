package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/habitloop/backend/internal/models"
)

func newTestHabitService() (HabitService, *mockHabitRepository, *mockHabitLogRepository, *mockUserRepository) {
	habitRepo := newMockHabitRepository()
	logRepo := newMockHabitLogRepository()
	userRepo := newMockUserRepository()
	return NewHabitService(habitRepo, logRepo, userRepo, "UTC"), habitRepo, logRepo, userRepo
}

func TestToggleLog_CreatesCompletedLog(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, logRepo, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Read", Frequency: 5})

	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

	log, err := service.ToggleLog(ctx, user.ID, habit.ID, at)
	if err != nil {
		t.Fatalf("ToggleLog failed: %v", err)
	}
	if !log.Completed {
		t.Error("Expected first toggle to create a completed log")
	}
	if log.WeekKey != "2024-10" {
		t.Errorf("Expected week key 2024-10, got %s", log.WeekKey)
	}
	if logRepo.createCalls != 1 {
		t.Errorf("Expected 1 create, got %d", logRepo.createCalls)
	}
}

func TestToggleLog_DoubleToggleFlipsInPlace(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, logRepo, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Run", Frequency: 3})

	// Two different instants on the same calendar day
	morning := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 15, 21, 45, 0, 0, time.UTC)

	first, err := service.ToggleLog(ctx, user.ID, habit.ID, morning)
	if err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}

	second, err := service.ToggleLog(ctx, user.ID, habit.ID, evening)
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected the same log row flipped, got %s vs %s", second.ID, first.ID)
	}
	if second.Completed {
		t.Error("Expected second toggle to mark the day incomplete")
	}

	third, err := service.ToggleLog(ctx, user.ID, habit.ID, evening)
	if err != nil {
		t.Fatalf("Third toggle failed: %v", err)
	}
	if !third.Completed {
		t.Error("Expected third toggle to mark the day completed again")
	}

	if logRepo.createCalls != 1 {
		t.Errorf("Expected exactly 1 created row, got %d", logRepo.createCalls)
	}
	if logRepo.flipCalls != 2 {
		t.Errorf("Expected 2 in-place flips, got %d", logRepo.flipCalls)
	}
}

func TestToggleLog_OwnerTimezoneDecidesDay(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, logRepo, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "America/Los_Angeles"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Meditate", Frequency: 7})

	// Both instants fall on March 9 in Los Angeles even though the second
	// is already March 10 in UTC
	lateEvening := time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)   // Mar 9, 21:00 PST
	nearMidnight := time.Date(2024, 3, 10, 7, 59, 0, 0, time.UTC) // Mar 9, 23:59 PST

	if _, err := service.ToggleLog(ctx, user.ID, habit.ID, lateEvening); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	second, err := service.ToggleLog(ctx, user.ID, habit.ID, nearMidnight)
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if second.Completed {
		t.Error("Expected same local day, so second toggle should flip to incomplete")
	}
	if logRepo.createCalls != 1 {
		t.Errorf("Expected 1 created row for one local day, got %d", logRepo.createCalls)
	}

	// 08:00 UTC is local midnight, the start of March 10
	nextDay := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	third, err := service.ToggleLog(ctx, user.ID, habit.ID, nextDay)
	if err != nil {
		t.Fatalf("Third toggle failed: %v", err)
	}
	if !third.Completed {
		t.Error("Expected a fresh completed log for the next local day")
	}
	if logRepo.createCalls != 2 {
		t.Errorf("Expected a second created row, got %d creates", logRepo.createCalls)
	}
}

func TestToggleLog_OtherUsersHabitNotFound(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, _, userRepo := newTestHabitService()

	owner, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	intruder, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: owner.ID, Name: "Write", Frequency: 2})

	_, err := service.ToggleLog(ctx, intruder.ID, habit.ID, time.Now())
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Expected ErrHabitNotFound for another user's habit, got %v", err)
	}
}

func TestLoggedOn_IncompleteDayReportsNothing(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, _, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Stretch", Frequency: 4})

	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	if _, err := service.ToggleLog(ctx, user.ID, habit.ID, at); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	found, err := service.LoggedOn(ctx, user.ID, habit.ID, at)
	if err != nil {
		t.Fatalf("LoggedOn failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected a completed log after one toggle")
	}

	// Toggle off, the day should read as not logged
	if _, err := service.ToggleLog(ctx, user.ID, habit.ID, at); err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	found, err = service.LoggedOn(ctx, user.ID, habit.ID, at)
	if err != nil {
		t.Fatalf("LoggedOn failed: %v", err)
	}
	if found != nil {
		t.Error("Expected no completed log after toggling off")
	}
}

func TestCreateHabit_AppendsToEndOfList(t *testing.T) {
	ctx := context.Background()
	service, _, _, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})

	for i, name := range []string{"Read", "Run", "Sleep early"} {
		habit, err := service.CreateHabit(ctx, user.ID, &models.CreateHabitRequest{
			Name:      name,
			Frequency: 3,
		})
		if err != nil {
			t.Fatalf("CreateHabit %q failed: %v", name, err)
		}
		if habit.Order != i {
			t.Errorf("Expected habit %q at order %d, got %d", name, i, habit.Order)
		}
	}
}

func TestUpdateHabit_PartialFields(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, _, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Read", Emoji: "📚", Frequency: 5})

	updated, err := service.UpdateHabit(ctx, user.ID, habit.ID, &models.UpdateHabitRequest{
		Name:      strPtr("Read fiction"),
		Frequency: intPtr(3),
	})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if updated.Name != "Read fiction" || updated.Frequency != 3 {
		t.Errorf("Expected name and frequency updated, got %q / %d", updated.Name, updated.Frequency)
	}
	if updated.Emoji != "📚" {
		t.Errorf("Expected untouched emoji to survive, got %q", updated.Emoji)
	}
}

func TestReorderHabits_RejectsForeignID(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, _, userRepo := newTestHabitService()

	owner, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	other, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	mine, _ := habitRepo.Create(ctx, &models.Habit{UserID: owner.ID, Name: "Read"})
	theirs, _ := habitRepo.Create(ctx, &models.Habit{UserID: other.ID, Name: "Run"})

	err := service.ReorderHabits(ctx, owner.ID, []string{theirs.ID, mine.ID})
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Expected ErrHabitNotFound for foreign habit ID, got %v", err)
	}
}

func TestDeleteHabit_RemovesItsLogs(t *testing.T) {
	ctx := context.Background()
	service, habitRepo, logRepo, userRepo := newTestHabitService()

	user, _ := userRepo.Create(ctx, &models.User{Timezone: "UTC"})
	habit, _ := habitRepo.Create(ctx, &models.Habit{UserID: user.ID, Name: "Read"})

	for day := 1; day <= 3; day++ {
		at := time.Date(2024, 6, day, 12, 0, 0, 0, time.UTC)
		if _, err := service.ToggleLog(ctx, user.ID, habit.ID, at); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}

	if err := service.DeleteHabit(ctx, user.ID, habit.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	if len(logRepo.logs) != 0 {
		t.Errorf("Expected all logs removed with the habit, %d remain", len(logRepo.logs))
	}
	if h, _ := habitRepo.GetByID(ctx, habit.ID); h != nil {
		t.Error("Expected habit to be deleted")
	}
}
