// Package notify implements the outbound notification collaborator. Actual
// email/SMS delivery is out of scope; notifications are written to the
// process log in the provider-gateway format the rest of the tooling tails.
package notify

import (
	"context"
	"fmt"

	"github.com/Skisteve007/Clean-Check/internal/engine"
)

// LogNotifier satisfies engine.Notifier. Every call is best-effort and never
// returns an error to the caller.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, kind, recipient string, data map[string]string) {
	switch kind {
	case engine.NotifyWelcome:
		fmt.Printf("[EMAIL LOG] to=%s welcome name=%s membershipId=%s fee=%s\n",
			recipient, data["name"], data["membershipId"], data["fee"])
	case engine.NotifyAdminPaymentAlert:
		fmt.Printf("[EMAIL LOG] to=%s payment submitted by %s (%s) method=%s amount=%s\n",
			recipient, data["name"], data["membershipId"], data["method"], data["amount"])
		if phone := data["phone"]; phone != "" {
			fmt.Printf("[SMS LOG] to=%s payment pending review for %s\n", phone, data["membershipId"])
		}
	case engine.NotifyUserApproved:
		fmt.Printf("[EMAIL LOG] to=%s membership approved. Member ID: %s\n",
			recipient, data["assignedMemberId"])
	case engine.NotifyPaymentRejected:
		fmt.Printf("[EMAIL LOG] to=%s payment rejected reason=%q\n", recipient, data["reason"])
	case engine.NotifyAutoVerified:
		fmt.Printf("[EMAIL LOG] to=%s payment auto-verified. Member ID: %s\n",
			recipient, data["assignedMemberId"])
	default:
		fmt.Printf("[EMAIL LOG] to=%s kind=%s data=%v\n", recipient, kind, data)
	}
}
