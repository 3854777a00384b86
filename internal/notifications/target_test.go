package notifications

import (
	"testing"

	"github.com/google/uuid"
)

func TestTargetString(t *testing.T) {
	if got := AdminTarget().String(); got != "admin" {
		t.Fatalf("admin target serialized to %q", got)
	}

	id := uuid.New()
	if got := CustomerTarget(id).String(); got != "customer:"+id.String() {
		t.Fatalf("customer target serialized to %q", got)
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("admin")
	if err != nil {
		t.Fatalf("parse admin: %v", err)
	}
	if !target.IsAdmin() {
		t.Fatalf("expected admin target")
	}

	id := uuid.New()
	target, err = ParseTarget("customer:" + id.String())
	if err != nil {
		t.Fatalf("parse customer: %v", err)
	}
	customerID, ok := target.CustomerID()
	if !ok || customerID != id {
		t.Fatalf("expected customer id %s, got %s (ok=%v)", id, customerID, ok)
	}

	for _, bad := range []string{"", "staff", "customer:", "customer:not-a-uuid"} {
		if _, err := ParseTarget(bad); err == nil {
			t.Fatalf("expected error parsing %q", bad)
		}
	}
}

func TestTargetForUser(t *testing.T) {
	id := uuid.New()
	if !TargetForUser(id, true).IsAdmin() {
		t.Fatalf("admin user should map to admin target")
	}
	target := TargetForUser(id, false)
	customerID, ok := target.CustomerID()
	if !ok || customerID != id {
		t.Fatalf("customer user should map to own customer target")
	}
}
