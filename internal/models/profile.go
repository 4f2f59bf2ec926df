package models

import (
	"encoding/json"
	"time"
)

type UserStatus int

const (
	StatusGuest          UserStatus = 0
	StatusPendingPayment UserStatus = 1
	StatusInReview       UserStatus = 2
	StatusApproved       UserStatus = 3

	ProfileEntity = "profile"
)

type PaymentStatus string

const (
	PaymentPending         PaymentStatus = "pending"
	PaymentPendingApproval PaymentStatus = "pending_approval"
	PaymentConfirmed       PaymentStatus = "confirmed"
	PaymentRejected        PaymentStatus = "rejected"
)

type Reference struct {
	MembershipID string    `bson:"membershipId" json:"membershipId"`
	Name         string    `bson:"name" json:"name"`
	AddedOn      time.Time `bson:"addedOn" json:"addedOn"`
}

type Profile struct {
	MembershipID     string        `bson:"membershipId" json:"membershipId"`
	Name             string        `bson:"name" json:"name"`
	Email            string        `bson:"email" json:"email"`
	Photo            string        `bson:"photo" json:"photo"`
	UserStatus       UserStatus    `bson:"userStatus" json:"userStatus"`
	PaymentStatus    PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	AssignedMemberID string        `bson:"assignedMemberId" json:"assignedMemberId"`
	DocumentUploaded bool          `bson:"documentUploaded" json:"documentUploaded"`
	DocumentData     string        `bson:"documentData,omitempty" json:"documentData,omitempty"`
	DocumentType     string        `bson:"documentType,omitempty" json:"documentType,omitempty"`
	References       []Reference   `bson:"references" json:"references"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// QREnabled reports whether the shareable membership QR code is unlocked.
// It is derived, never stored: a profile with a confirmed payment always has
// it, everything else never does.
func (p *Profile) QREnabled() bool {
	return p.PaymentStatus == PaymentConfirmed
}

func (p Profile) MarshalJSON() ([]byte, error) {
	type alias Profile
	return json.Marshal(struct {
		alias
		QRCodeEnabled bool `json:"qrCodeEnabled"`
	}{alias(p), p.QREnabled()})
}

var ValidPaymentStatuses = map[string]bool{
	string(PaymentPending):         true,
	string(PaymentPendingApproval): true,
	string(PaymentConfirmed):       true,
	string(PaymentRejected):        true,
}

func IsValidPaymentStatus(status string) bool {
	return ValidPaymentStatuses[status]
}

func IsValidUserStatus(status int) bool {
	return status >= int(StatusGuest) && status <= int(StatusApproved)
}
