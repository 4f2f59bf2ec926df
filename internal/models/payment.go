package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConfirmationStatus string

const (
	ConfirmationPending  ConfirmationStatus = "pending"
	ConfirmationApproved ConfirmationStatus = "approved"
	ConfirmationRejected ConfirmationStatus = "rejected"

	ConfirmationEntity = "payment_confirmation"
)

// PaymentConfirmation is a user-submitted claim of payment. A profile may
// accumulate several over time; at most one is pending at any moment.
type PaymentConfirmation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MembershipID    string             `bson:"membershipId" json:"membershipId"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Amount          string             `bson:"amount" json:"amount"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status          ConfirmationStatus `bson:"status" json:"status"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
	ApprovedAt      *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedAt      *time.Time         `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}
