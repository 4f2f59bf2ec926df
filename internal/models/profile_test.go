package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Skisteve007/Clean-Check/internal/models"
)

func TestIsValidPaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		isValid bool
	}{
		{"Valid Pending", string(models.PaymentPending), true},
		{"Valid Pending Approval", string(models.PaymentPendingApproval), true},
		{"Valid Confirmed", string(models.PaymentConfirmed), true},
		{"Valid Rejected", string(models.PaymentRejected), true},
		{"Invalid Status", "paid", false},
		{"Empty Status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidPaymentStatus(tt.status); got != tt.isValid {
				t.Errorf("IsValidPaymentStatus() = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestIsValidUserStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		isValid bool
	}{
		{"Guest", 0, true},
		{"Pending Payment", 1, true},
		{"In Review", 2, true},
		{"Approved", 3, true},
		{"Negative", -1, false},
		{"Out of range", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidUserStatus(tt.status); got != tt.isValid {
				t.Errorf("IsValidUserStatus() = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestQREnabledIsDerived(t *testing.T) {
	p := models.Profile{PaymentStatus: models.PaymentPending}
	if p.QREnabled() {
		t.Error("QREnabled() should be false while payment is pending")
	}

	p.PaymentStatus = models.PaymentConfirmed
	if !p.QREnabled() {
		t.Error("QREnabled() should be true once payment is confirmed")
	}
}

func TestProfileJSONIncludesQRFlag(t *testing.T) {
	p := models.Profile{
		MembershipID:  "abc",
		Name:          "Jane",
		PaymentStatus: models.PaymentConfirmed,
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"qrCodeEnabled":true`) {
		t.Errorf("expected derived qrCodeEnabled in JSON, got %s", out)
	}
}
