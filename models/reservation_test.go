package models

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Role{}, &User{}, &Service{}, &Payment{}, &Reservation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestReservation() *Reservation {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return &Reservation{
		ReservationDate: day,
		StartTime:       day.Add(14 * time.Hour),
		EndTime:         day.Add(16 * time.Hour),
		TotalPriceCents: 5000,
		Status:          StatusPending,
		PropertyName:    "Villa des Pins",
		ClientID:        1,
		ProviderID:      2,
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]ReservationStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusRejected}:    true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusCompleted}: true,
	}

	all := []ReservationStatus{
		StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted,
	}
	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			want := allowed[[2]ReservationStatus{from, to}]
			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []ReservationStatus{StatusRejected, StatusCancelled, StatusCompleted} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed} {
		if s.IsTerminal() {
			t.Errorf("expected %s not to be terminal", s)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Reservation)
		field  string
	}{
		{"end before start", func(r *Reservation) {
			r.EndTime = r.StartTime.Add(-time.Hour)
		}, "end_time"},
		{"end equals start", func(r *Reservation) {
			r.EndTime = r.StartTime
		}, "end_time"},
		{"start not on reservation date", func(r *Reservation) {
			r.StartTime = r.StartTime.AddDate(0, 0, 1)
			r.EndTime = r.EndTime.AddDate(0, 0, 1)
		}, "start_time"},
		{"end spills into next day", func(r *Reservation) {
			r.EndTime = r.EndTime.AddDate(0, 0, 1)
		}, "end_time"},
		{"negative price", func(r *Reservation) {
			r.TotalPriceCents = -1
		}, "total_price_cents"},
		{"missing client", func(r *Reservation) {
			r.ClientID = 0
		}, "client_id"},
		{"missing provider", func(r *Reservation) {
			r.ProviderID = 0
		}, "provider_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestReservation()
			tc.mutate(r)
			err := r.Validate()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}

	if err := newTestReservation().Validate(); err != nil {
		t.Fatalf("expected valid reservation, got %v", err)
	}
}

func TestCreateRejectsInvalidReservation(t *testing.T) {
	db := openTestDB(t)

	r := newTestReservation()
	r.EndTime = r.StartTime.Add(-time.Hour)
	if err := db.Create(r).Error; err == nil {
		t.Fatal("expected create to fail validation")
	}

	var count int64
	db.Model(&Reservation{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows stored, got %d", count)
	}
}

func TestCreateDefaultsToPending(t *testing.T) {
	db := openTestDB(t)

	r := newTestReservation()
	r.Status = ""
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r.Status != StatusPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}
}

func TestTransitionConfirm(t *testing.T) {
	db := openTestDB(t)

	r := newTestReservation()
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	before := r.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	if err := r.Transition(db, StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if r.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", r.Status)
	}
	if !r.UpdatedAt.After(before) {
		t.Fatal("expected UpdatedAt to advance")
	}

	var stored Reservation
	if err := db.First(&stored, r.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != StatusConfirmed {
		t.Fatalf("stored status = %s, want confirmed", stored.Status)
	}
}

func TestTransitionInvalidLeavesStatusUnchanged(t *testing.T) {
	db := openTestDB(t)

	r := newTestReservation()
	r.Status = StatusCompleted
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := r.Transition(db, StatusCancelled)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	var stored Reservation
	if err := db.First(&stored, r.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != StatusCompleted {
		t.Fatalf("stored status = %s, want completed", stored.Status)
	}
}

// Two racing writers both read PENDING; the compare-and-set guard lets
// exactly one transition win and the other observe a stale status.
func TestTransitionRaceLoserGetsStaleStatus(t *testing.T) {
	db := openTestDB(t)

	r := newTestReservation()
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	confirmer := *r
	rejecter := *r

	if err := confirmer.Transition(db, StatusConfirmed); err != nil {
		t.Fatalf("first transition failed: %v", err)
	}

	err := rejecter.Transition(db, StatusRejected)
	if !errors.Is(err, ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}

	var stored Reservation
	if err := db.First(&stored, r.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != StatusConfirmed {
		t.Fatalf("stored status = %s, want confirmed", stored.Status)
	}
}

func TestTransitionConfirmedLifecycle(t *testing.T) {
	db := openTestDB(t)

	for _, target := range []ReservationStatus{StatusCancelled, StatusCompleted} {
		r := newTestReservation()
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := r.Transition(db, StatusConfirmed); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if err := r.Transition(db, target); err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
		// Terminal state: nothing more is allowed.
		if err := r.Transition(db, StatusConfirmed); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition from %s, got %v", target, err)
		}
	}
}
