package service

import (
	"testing"
	"time"
)

func TestListActiveWindow(t *testing.T) {
	f := newFixture(t)

	f.login(t, "ana", nil)

	f.clock.Advance(4 * time.Minute)
	bea := f.login(t, "bea", nil)

	f.clock.Advance(2 * time.Minute) // ana is now 6 minutes quiet

	active, err := f.presence.ListActive()
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active count GOT[%d], EXPECTED[1]", len(active))
	}
	if active[0].ID != bea.ID {
		t.Errorf("expected only bea to be active")
	}
}

func TestLoginNormalizesEmptyGroup(t *testing.T) {
	f := newFixture(t)

	f.login(t, "ana", strptr("blue"))

	// An empty group tag counts as "not supplied" and must not clear the
	// stored one.
	empty := ""
	again := f.login(t, "ana", &empty)
	if again.Group == nil || *again.Group != "blue" {
		t.Errorf("expected empty group to leave the stored tag alone")
	}
}
