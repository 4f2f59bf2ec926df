package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentEventEntity = "payment_event"

// PaymentEvent is a push notification from an external payment provider.
// Events are keyed by payer email, not membership ID, so matching is
// best-effort; unmatched events stay in the inbox for manual reconciliation.
type PaymentEvent struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider             string             `bson:"provider" json:"provider"`
	PayerEmail           string             `bson:"payerEmail" json:"payerEmail"`
	PayerName            string             `bson:"payerName" json:"payerName"`
	Amount               string             `bson:"amount" json:"amount"`
	TransactionID        string             `bson:"transactionId" json:"transactionId"`
	Status               string             `bson:"status" json:"status"`
	MatchedMembershipID  string             `bson:"matchedMembershipId,omitempty" json:"matchedMembershipId,omitempty"`
	Reconciled           bool               `bson:"reconciled" json:"reconciled"`
	ReconciliationNote   string             `bson:"reconciliationNote,omitempty" json:"reconciliationNote,omitempty"`
	ReceivedAt           time.Time          `bson:"receivedAt" json:"receivedAt"`
}

// Succeeded reports whether the provider considers the payment complete.
// Providers disagree on vocabulary, so a few spellings are accepted.
func (e *PaymentEvent) Succeeded() bool {
	switch strings.ToLower(e.Status) {
	case "succeeded", "completed", "success":
		return true
	}
	return false
}
