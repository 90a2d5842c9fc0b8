package payments

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/servibook/reserva/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestNewPayment(t *testing.T) {
	db := openTestDB(t)

	payment, err := NewPayment(db, 5000)
	if err != nil {
		t.Fatalf("NewPayment failed: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("expected pending, got %s", payment.Status)
	}
	if payment.Reference == "" {
		t.Fatal("expected a provider reference")
	}
	if payment.AmountCents != 5000 {
		t.Fatalf("expected 5000 cents, got %d", payment.AmountCents)
	}
}

func TestCaptureIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	payment, err := NewPayment(db, 5000)
	if err != nil {
		t.Fatalf("NewPayment failed: %v", err)
	}

	if err := Capture(db, payment.ID); err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if err := Capture(db, payment.ID); err != nil {
		t.Fatalf("repeated capture should be a no-op: %v", err)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != models.PaymentCaptured {
		t.Fatalf("expected captured, got %s", stored.Status)
	}
}

func TestRefundAfterCapture(t *testing.T) {
	db := openTestDB(t)

	payment, err := NewPayment(db, 5000)
	if err != nil {
		t.Fatalf("NewPayment failed: %v", err)
	}
	if err := Capture(db, payment.ID); err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	if err := Refund(db, payment.ID); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if err := Refund(db, payment.ID); err != nil {
		t.Fatalf("repeated refund should be a no-op: %v", err)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != models.PaymentRefunded {
		t.Fatalf("expected refunded, got %s", stored.Status)
	}

	// A refunded payment can never be captured again.
	if err := Capture(db, payment.ID); err == nil {
		t.Fatal("expected capture of refunded payment to fail")
	}
}

func TestRefundUncapturedPaymentIsNoOp(t *testing.T) {
	db := openTestDB(t)

	payment, err := NewPayment(db, 5000)
	if err != nil {
		t.Fatalf("NewPayment failed: %v", err)
	}
	if err := Refund(db, payment.ID); err != nil {
		t.Fatalf("refund of uncaptured payment should not error: %v", err)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != models.PaymentPending {
		t.Fatalf("expected pending, got %s", stored.Status)
	}
}
