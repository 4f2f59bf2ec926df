package engine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skisteve007/Clean-Check/internal/models"
)

// Store is the persistence contract the lifecycle engine runs against.
// Lookups return ErrNotFound for absent records. Writes that would violate a
// uniqueness guarantee (membershipId, non-empty email, non-empty
// assignedMemberId) return ErrConflict; the engine relies on that for the
// member-ID redraw loop, so the check must be enforced by the store itself,
// not by a read-then-write in the caller.
type Store interface {
	Get(ctx context.Context, membershipID string) (*models.Profile, error)
	Put(ctx context.Context, p *models.Profile) error
	// UpdateIfMatch applies set to the profile only while every expected
	// field still holds its expected value. Returns false on mismatch or
	// missing profile.
	UpdateIfMatch(ctx context.Context, membershipID string, expected, set map[string]any) (bool, error)
	Delete(ctx context.Context, membershipID string) (bool, error)
	FindByAssignedMemberID(ctx context.Context, code string) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	// AppendReference atomically appends ref unless a reference with the
	// same membershipId is already present (ErrConflict).
	AppendReference(ctx context.Context, membershipID string, ref models.Reference) error
	// PullReference removes the reference if present; absence is not an error.
	PullReference(ctx context.Context, membershipID, refMembershipID string) error
	QueryProfiles(ctx context.Context, search string, limit, skip int64) ([]models.Profile, error)

	// AppendConfirmation inserts the confirmation; a pending one may exist
	// per profile at most once, so inserting a second pending confirmation
	// returns ErrConflict.
	AppendConfirmation(ctx context.Context, c *models.PaymentConfirmation) error
	FindLatestPendingConfirmation(ctx context.Context, membershipID string) (*models.PaymentConfirmation, error)
	UpdateConfirmation(ctx context.Context, id primitive.ObjectID, set map[string]any) error

	AppendPaymentEvent(ctx context.Context, ev *models.PaymentEvent) error
}

// Notifier delivers outbound email/SMS. Delivery is best-effort and must
// never fail a state transition; implementations log and swallow errors.
type Notifier interface {
	Notify(ctx context.Context, kind, recipient string, data map[string]string)
}

// Auditor records lifecycle actions. utils.Logger satisfies this.
type Auditor interface {
	Log(ctx context.Context, entity, action string, data any) error
}

// Notification kinds.
const (
	NotifyWelcome           = "welcome"
	NotifyAdminPaymentAlert = "admin-payment-alert"
	NotifyUserApproved      = "user-approved"
	NotifyPaymentRejected   = "payment-rejected"
	NotifyAutoVerified      = "payment-auto-verified"
)
