// Package engine owns the membership lifecycle: registration, payment
// submission and review, document upload, the reference graph, and
// reconciliation of payment-provider events. All state transitions and the
// invariants around admin-assigned member IDs live here; persistence,
// notification delivery, and HTTP are collaborators behind interfaces.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skisteve007/Clean-Check/internal/constants"
	"github.com/Skisteve007/Clean-Check/internal/models"
)

type Config struct {
	// AutoApprove confirms payments on submission instead of holding them
	// for admin review.
	AutoApprove bool
	// VerifiedReferencesOnly restricts reference targets to profiles with a
	// confirmed payment.
	VerifiedReferencesOnly bool
	AdminEmail             string
	AdminPhone             string
	MembershipFee          string
}

type Engine struct {
	store    Store
	notifier Notifier
	auditor  Auditor
	cfg      Config
}

func New(store Store, notifier Notifier, auditor Auditor, cfg Config) *Engine {
	return &Engine{store: store, notifier: notifier, auditor: auditor, cfg: cfg}
}

func (e *Engine) notify(ctx context.Context, kind, recipient string, data map[string]string) {
	if e.notifier == nil || recipient == "" {
		return
	}
	e.notifier.Notify(ctx, kind, recipient, data)
}

func (e *Engine) audit(ctx context.Context, entity, action string, data any) {
	if e.auditor == nil {
		return
	}
	if err := e.auditor.Log(ctx, entity, action, data); err != nil {
		// Audit trail is best-effort, same as notifications.
		log.Printf("[AUDIT] log failed: %v", err)
	}
}

// Register creates a new profile in PendingPayment state. The membership ID
// is assigned here, exactly once, and never changes afterwards.
func (e *Engine) Register(ctx context.Context, name, email, photo string) (*models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		MembershipID:  uuid.NewString(),
		Name:          name,
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Photo:         photo,
		UserStatus:    models.StatusPendingPayment,
		PaymentStatus: models.PaymentPending,
		References:    []models.Reference{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.store.Put(ctx, profile); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	e.audit(ctx, models.ProfileEntity, constants.Create, profile)
	e.notify(ctx, NotifyWelcome, profile.Email, map[string]string{
		"name":         profile.Name,
		"membershipId": profile.MembershipID,
		"fee":          e.cfg.MembershipFee,
	})
	return profile, nil
}

func (e *Engine) GetProfile(ctx context.Context, membershipID string) (*models.Profile, error) {
	return e.store.Get(ctx, membershipID)
}

func (e *Engine) UpdateProfile(ctx context.Context, membershipID, name, photo string) (*models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	ok, err := e.store.UpdateIfMatch(ctx, membershipID, nil, map[string]any{
		"name":      name,
		"photo":     photo,
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	e.audit(ctx, models.ProfileEntity, constants.Update, membershipID)
	return e.store.Get(ctx, membershipID)
}

func (e *Engine) DeleteProfile(ctx context.Context, membershipID string) error {
	deleted, err := e.store.Delete(ctx, membershipID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	// References held by other profiles that point at the deleted one are
	// left dangling; RemoveReference stays idempotent so they can be
	// cleaned up whenever they surface.
	e.audit(ctx, models.ProfileEntity, constants.Delete, membershipID)
	return nil
}

func (e *Engine) ListProfiles(ctx context.Context, search string, limit, skip int64) ([]models.Profile, error) {
	return e.store.QueryProfiles(ctx, search, limit, skip)
}

// SubmitPayment records a payment claim. While a prior claim is still
// pending, resubmission is rejected; the admin has to act on it first.
func (e *Engine) SubmitPayment(ctx context.Context, membershipID, method, amount, transactionID, notes string) (*models.PaymentConfirmation, error) {
	profile, err := e.store.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(method) == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalid)
	}
	if profile.PaymentStatus == models.PaymentConfirmed {
		return nil, fmt.Errorf("%w: membership is already active", ErrConflict)
	}

	// Early answer for the common case; the store's one-pending-per-profile
	// guarantee is the authority when submissions race.
	if _, err := e.store.FindLatestPendingConfirmation(ctx, membershipID); err == nil {
		return nil, fmt.Errorf("%w: a payment confirmation is already pending", ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	conf := &models.PaymentConfirmation{
		MembershipID:  membershipID,
		PaymentMethod: method,
		Amount:        amount,
		TransactionID: transactionID,
		Notes:         notes,
		Status:        models.ConfirmationPending,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := e.store.AppendConfirmation(ctx, conf); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: a payment confirmation is already pending", ErrConflict)
		}
		return nil, err
	}
	e.audit(ctx, models.ConfirmationEntity, constants.SubmitPayment, conf)

	if e.cfg.AutoApprove {
		if _, err := e.approve(ctx, profile, "", conf, NotifyAutoVerified); err != nil {
			return nil, err
		}
		conf.Status = models.ConfirmationApproved
		return conf, nil
	}

	ok, err := e.store.UpdateIfMatch(ctx, membershipID, nil, map[string]any{
		"paymentStatus": models.PaymentPending,
		"updatedAt":     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
	}

	e.notify(ctx, NotifyAdminPaymentAlert, e.cfg.AdminEmail, map[string]string{
		"membershipId": membershipID,
		"name":         profile.Name,
		"method":       method,
		"amount":       amount,
		"phone":        e.cfg.AdminPhone,
	})
	return conf, nil
}

// ApprovePayment confirms the latest pending claim and assigns the member ID.
// When assignedMemberID is empty a unique 6-digit code is generated; an
// explicit code collides fatally instead of redrawing.
func (e *Engine) ApprovePayment(ctx context.Context, membershipID, assignedMemberID string) (*models.Profile, error) {
	profile, err := e.store.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if profile.AssignedMemberID != "" {
		return nil, fmt.Errorf("%w: profile already approved with member id %s", ErrConflict, profile.AssignedMemberID)
	}

	conf, err := e.store.FindLatestPendingConfirmation(ctx, membershipID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: no pending payment confirmation", ErrConflict)
		}
		return nil, err
	}

	return e.approve(ctx, profile, assignedMemberID, conf, NotifyUserApproved)
}

// approve performs the shared transition to Approved. The conditional update
// is guarded on assignedMemberId still being empty, and the store's
// uniqueness guarantee arbitrates concurrent approvals of different profiles;
// a duplicate-code conflict redraws, a lost race on the same profile stops.
func (e *Engine) approve(ctx context.Context, profile *models.Profile, suppliedID string, conf *models.PaymentConfirmation, kind string) (*models.Profile, error) {
	assigned := ""
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		code := suppliedID
		if code == "" {
			var err error
			code, err = randomMemberID()
			if err != nil {
				return nil, err
			}
			// Cheap pre-check; the unique index is the authority.
			if _, err := e.store.FindByAssignedMemberID(ctx, code); err == nil {
				continue
			} else if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}

		now := time.Now().UTC()
		ok, err := e.store.UpdateIfMatch(ctx, profile.MembershipID,
			map[string]any{"assignedMemberId": ""},
			map[string]any{
				"userStatus":       models.StatusApproved,
				"paymentStatus":    models.PaymentConfirmed,
				"assignedMemberId": code,
				"updatedAt":        now,
			})
		if err != nil {
			if errors.Is(err, ErrConflict) {
				if suppliedID != "" {
					return nil, fmt.Errorf("%w: member id %s already assigned", ErrConflict, suppliedID)
				}
				continue
			}
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: profile was approved concurrently", ErrConflict)
		}
		assigned = code
		break
	}
	if assigned == "" {
		return nil, ErrExhaustedIDSpace
	}

	now := time.Now().UTC()
	if conf != nil {
		err := e.store.UpdateConfirmation(ctx, conf.ID, map[string]any{
			"status":     models.ConfirmationApproved,
			"approvedAt": now,
		})
		if err != nil {
			return nil, err
		}
	}

	profile.UserStatus = models.StatusApproved
	profile.PaymentStatus = models.PaymentConfirmed
	profile.AssignedMemberID = assigned
	profile.UpdatedAt = now

	e.audit(ctx, models.ProfileEntity, constants.ApprovePayment, map[string]string{
		"membershipId":     profile.MembershipID,
		"assignedMemberId": assigned,
	})
	e.notify(ctx, kind, profile.Email, map[string]string{
		"name":             profile.Name,
		"membershipId":     profile.MembershipID,
		"assignedMemberId": assigned,
	})
	return profile, nil
}

func (e *Engine) RejectPayment(ctx context.Context, membershipID, reason string) error {
	profile, err := e.store.Get(ctx, membershipID)
	if err != nil {
		return err
	}

	// Nothing pending to act on is the same conflict approval reports.
	conf, err := e.store.FindLatestPendingConfirmation(ctx, membershipID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: no pending payment confirmation", ErrConflict)
		}
		return err
	}

	now := time.Now().UTC()
	err = e.store.UpdateConfirmation(ctx, conf.ID, map[string]any{
		"status":          models.ConfirmationRejected,
		"rejectedAt":      now,
		"rejectionReason": reason,
	})
	if err != nil {
		return err
	}

	// userStatus is deliberately left alone; the user may resubmit.
	ok, err := e.store.UpdateIfMatch(ctx, membershipID, nil, map[string]any{
		"paymentStatus": models.PaymentRejected,
		"updatedAt":     now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: profile not found", ErrNotFound)
	}

	e.audit(ctx, models.ConfirmationEntity, constants.RejectPayment, map[string]string{
		"membershipId": membershipID,
		"reason":       reason,
	})
	e.notify(ctx, NotifyPaymentRejected, profile.Email, map[string]string{
		"name":   profile.Name,
		"reason": reason,
	})
	return nil
}

// UploadDocument stores the supporting document. Payment must already be
// confirmed; the ordering is a hard invariant, so an unpaid profile gets
// Forbidden, not NotFound.
func (e *Engine) UploadDocument(ctx context.Context, membershipID, documentData, documentType string) (*models.Profile, error) {
	profile, err := e.store.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if profile.PaymentStatus != models.PaymentConfirmed {
		return nil, fmt.Errorf("%w: document upload requires a confirmed payment", ErrForbidden)
	}
	if documentData == "" {
		return nil, fmt.Errorf("%w: document data is required", ErrInvalid)
	}

	now := time.Now().UTC()
	ok, err := e.store.UpdateIfMatch(ctx, membershipID,
		map[string]any{"paymentStatus": models.PaymentConfirmed},
		map[string]any{
			"documentUploaded": true,
			"documentData":     documentData,
			"documentType":     documentType,
			"updatedAt":        now,
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: document upload requires a confirmed payment", ErrForbidden)
	}

	profile.DocumentUploaded = true
	profile.DocumentData = documentData
	profile.DocumentType = documentType
	profile.UpdatedAt = now

	e.audit(ctx, models.ProfileEntity, constants.UploadDocument, map[string]string{
		"membershipId": membershipID,
		"documentType": documentType,
	})
	return profile, nil
}

// AddReference appends an endorsement link. Subject and target are looked up
// separately so the caller can tell which one was missing.
func (e *Engine) AddReference(ctx context.Context, membershipID, refMembershipID, refName string) (*models.Reference, error) {
	if membershipID == refMembershipID {
		return nil, fmt.Errorf("%w: cannot reference own profile", ErrInvalid)
	}
	if _, err := e.store.Get(ctx, membershipID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
		}
		return nil, err
	}
	target, err := e.store.Get(ctx, refMembershipID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: referenced profile not found", ErrNotFound)
		}
		return nil, err
	}
	if e.cfg.VerifiedReferencesOnly && target.PaymentStatus != models.PaymentConfirmed {
		return nil, fmt.Errorf("%w: referenced profile is not a verified member", ErrForbidden)
	}

	ref := models.Reference{
		MembershipID: refMembershipID,
		Name:         refName,
		AddedOn:      time.Now().UTC(),
	}
	if err := e.store.AppendReference(ctx, membershipID, ref); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: reference already exists", ErrConflict)
		}
		return nil, err
	}

	e.audit(ctx, models.ProfileEntity, constants.AddReference, map[string]string{
		"membershipId":    membershipID,
		"refMembershipId": refMembershipID,
	})
	return &ref, nil
}

// RemoveReference is idempotent: removing a reference that is not there is
// not an error, only a missing subject profile is.
func (e *Engine) RemoveReference(ctx context.Context, membershipID, refMembershipID string) error {
	if _, err := e.store.Get(ctx, membershipID); err != nil {
		return err
	}
	if err := e.store.PullReference(ctx, membershipID, refMembershipID); err != nil {
		return err
	}
	e.audit(ctx, models.ProfileEntity, constants.RemoveReference, map[string]string{
		"membershipId":    membershipID,
		"refMembershipId": refMembershipID,
	})
	return nil
}

// HandlePaymentEvent ingests a payment-provider push notification. Every
// event is stored; a successful event matched by payer email approves the
// profile, anything else stays in the inbox for manual reconciliation.
func (e *Engine) HandlePaymentEvent(ctx context.Context, ev *models.PaymentEvent) (*models.PaymentEvent, error) {
	ev.ReceivedAt = time.Now().UTC()
	ev.PayerEmail = strings.ToLower(strings.TrimSpace(ev.PayerEmail))

	if ev.PayerEmail == "" {
		ev.ReconciliationNote = "event carries no payer email"
		return ev, e.store.AppendPaymentEvent(ctx, ev)
	}
	if !ev.Succeeded() {
		ev.ReconciliationNote = "payment not successful, nothing to reconcile"
		return ev, e.store.AppendPaymentEvent(ctx, ev)
	}

	profile, err := e.store.FindByEmail(ctx, ev.PayerEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ev.ReconciliationNote = "no profile matches payer email"
			return ev, e.store.AppendPaymentEvent(ctx, ev)
		}
		return nil, err
	}
	ev.MatchedMembershipID = profile.MembershipID

	if profile.AssignedMemberID != "" {
		ev.Reconciled = true
		ev.ReconciliationNote = "profile already approved"
		return ev, e.store.AppendPaymentEvent(ctx, ev)
	}

	conf, err := e.store.FindLatestPendingConfirmation(ctx, profile.MembershipID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// The provider event is itself the payment proof; synthesize the
		// confirmation the user never filed.
		conf = &models.PaymentConfirmation{
			MembershipID:  profile.MembershipID,
			PaymentMethod: ev.Provider,
			Amount:        ev.Amount,
			TransactionID: ev.TransactionID,
			Notes:         "auto-verified from provider event",
			Status:        models.ConfirmationPending,
			SubmittedAt:   time.Now().UTC(),
		}
		if err := e.store.AppendConfirmation(ctx, conf); err != nil {
			if !errors.Is(err, ErrConflict) {
				return nil, err
			}
			// A submission raced in between the lookup and the insert; use
			// the confirmation that won.
			conf, err = e.store.FindLatestPendingConfirmation(ctx, profile.MembershipID)
			if err != nil {
				return nil, err
			}
		}
	}

	if _, err := e.approve(ctx, profile, "", conf, NotifyAutoVerified); err != nil {
		// Leave the event unreconciled rather than dropping it; the admin
		// can retry from the inbox.
		ev.ReconciliationNote = "auto-approval failed: " + err.Error()
		if storeErr := e.store.AppendPaymentEvent(ctx, ev); storeErr != nil {
			return nil, storeErr
		}
		return ev, nil
	}

	ev.Reconciled = true
	if err := e.store.AppendPaymentEvent(ctx, ev); err != nil {
		return nil, err
	}
	e.audit(ctx, models.PaymentEventEntity, constants.Reconcile, ev)
	return ev, nil
}
