package notifications

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type targetKind int

const (
	targetAdmin targetKind = iota
	targetCustomer
)

const (
	adminTargetValue     = "admin"
	customerTargetPrefix = "customer:"
)

// Target selects the recipient class of a notification: the shared admin pool
// or one specific customer. The string form ("admin" / "customer:<uuid>") is
// produced only at the persistence boundary.
type Target struct {
	kind       targetKind
	customerID uuid.UUID
}

// AdminTarget addresses the shared back-office pool.
func AdminTarget() Target {
	return Target{kind: targetAdmin}
}

// CustomerTarget addresses one customer's user account.
func CustomerTarget(userID uuid.UUID) Target {
	return Target{kind: targetCustomer, customerID: userID}
}

// TargetForUser derives the target a user reads their own notifications under.
func TargetForUser(userID uuid.UUID, isAdmin bool) Target {
	if isAdmin {
		return AdminTarget()
	}
	return CustomerTarget(userID)
}

// IsAdmin reports whether the target is the admin pool.
func (t Target) IsAdmin() bool {
	return t.kind == targetAdmin
}

// CustomerID returns the addressed customer's user id and whether one is set.
func (t Target) CustomerID() (uuid.UUID, bool) {
	if t.kind != targetCustomer {
		return uuid.Nil, false
	}
	return t.customerID, true
}

// String renders the persisted discriminator form.
func (t Target) String() string {
	if t.kind == targetAdmin {
		return adminTargetValue
	}
	return customerTargetPrefix + t.customerID.String()
}

// ParseTarget decodes the persisted discriminator form.
func ParseTarget(value string) (Target, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == adminTargetValue {
		return AdminTarget(), nil
	}
	if rest, ok := strings.CutPrefix(trimmed, customerTargetPrefix); ok {
		id, err := uuid.Parse(rest)
		if err != nil {
			return Target{}, fmt.Errorf("invalid customer target %q: %w", value, err)
		}
		return CustomerTarget(id), nil
	}
	return Target{}, fmt.Errorf("invalid notification target %q", value)
}
