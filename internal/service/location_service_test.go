package service

import (
	"testing"
	"time"
)

func TestListFreshWindow(t *testing.T) {
	f := newFixture(t)

	ana := f.login(t, "ana", nil)
	if err := f.location.Report(ana.ID, 48.85, 2.35); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	f.clock.Advance(90 * time.Second)
	fresh, err := f.location.ListFresh()
	if err != nil {
		t.Fatalf("ListFresh failed: %v", err)
	}
	if len(fresh) != 1 {
		t.Errorf("90s old location should still be fresh: GOT[%d], EXPECTED[1]", len(fresh))
	}

	f.clock.Advance(90 * time.Second) // 3 minutes total
	fresh, err = f.location.ListFresh()
	if err != nil {
		t.Fatalf("ListFresh failed: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("3m old location should be stale: GOT[%d], EXPECTED[0]", len(fresh))
	}
}

func TestListVisibleGroupScoping(t *testing.T) {
	f := newFixture(t)

	ana := f.login(t, "ana", strptr("blue"))
	bea := f.login(t, "bea", strptr("red"))

	if err := f.location.Report(ana.ID, 48.85, 2.35); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if err := f.location.Report(bea.ID, 48.86, 2.36); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	visible, err := f.location.ListVisible(&bea.ID, strptr("red"))
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("visible count GOT[%d], EXPECTED[1]", len(visible))
	}
	if visible[0].ParticipantID != bea.ID {
		t.Errorf("expected only bea's own location")
	}
}

func TestListVisibleAlwaysIncludesOwnLocation(t *testing.T) {
	f := newFixture(t)

	// bea has no group at all, yet filters for "red": bea's own location
	// still comes back.
	bea := f.login(t, "bea", nil)
	if err := f.location.Report(bea.ID, 48.86, 2.36); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	visible, err := f.location.ListVisible(&bea.ID, strptr("red"))
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ParticipantID != bea.ID {
		t.Errorf("expected own location regardless of group filter")
	}
}

func TestListVisibleWithoutFilterReturnsAllFresh(t *testing.T) {
	f := newFixture(t)

	ana := f.login(t, "ana", strptr("blue"))
	bea := f.login(t, "bea", strptr("red"))
	if err := f.location.Report(ana.ID, 1, 2); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if err := f.location.Report(bea.ID, 3, 4); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	visible, err := f.location.ListVisible(nil, nil)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(visible) != 2 {
		t.Errorf("visible count GOT[%d], EXPECTED[2]", len(visible))
	}
}
