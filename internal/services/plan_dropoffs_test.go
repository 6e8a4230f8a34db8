package services

import (
	"context"
	"dropoff-route-planner/internal/adapters/distance"
	"dropoff-route-planner/internal/domain"
	"testing"
	"time"
)

func TestPlannerTwoStopScenario(t *testing.T) {
	b, _, _ := testBuilder()
	p := NewPlanner(b, 2, 0)
	p.newID = func() string { return "plan-1" }

	result, err := p.Plan(context.Background(), testRequest("A", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID != "plan-1" {
		t.Fatalf("id = %q, want plan-1", result.ID)
	}
	if result.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", result.Len())
	}

	ab := result.Entries[0]
	if ab.Candidate.Label != "Home → A → B" {
		t.Fatalf("entry 0 = %q", ab.Candidate.Label)
	}
	if ab.Schedule.TotalDurationSeconds != 1500 {
		t.Fatalf("duration = %d, want 1500", ab.Schedule.TotalDurationSeconds)
	}
	if ab.Schedule.TotalDistanceMeters != 3000 {
		t.Fatalf("distance = %d, want 3000", ab.Schedule.TotalDistanceMeters)
	}

	ba := result.Entries[1].Schedule
	if ba.TotalDurationSeconds != 1950 {
		t.Fatalf("B->A duration = %d, want 1950", ba.TotalDurationSeconds)
	}
}

func TestPlannerResolutionFailureKeepsAllEntries(t *testing.T) {
	b, _, _ := testBuilder("addrB")
	result, err := NewPlanner(b, 2, 0).Plan(context.Background(), testRequest("A", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", result.Len())
	}
	if result.Failed() != 2 {
		t.Fatalf("expected both entries failed, got %d", result.Failed())
	}
}

func TestPlannerSiblingFailuresAreIsolated(t *testing.T) {
	// Without a C->B leg every ordering visiting B right after C fails.
	pairs := make([]distance.MockPair, 0, len(testPairs))
	for _, p := range testPairs {
		if p.From == "addrC" && p.To == "addrB" {
			continue
		}
		pairs = append(pairs, p)
	}
	b, _, _ := testBuilder()
	b.Provider = distance.NewMockDistanceProvider(testCoords, pairs)

	result, err := NewPlanner(b, 3, 0).Plan(context.Background(), testRequest("A", "B", "C"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Len() != 6 || result.Failed() != 2 {
		t.Fatalf("len=%d failed=%d, want 6/2", result.Len(), result.Failed())
	}
	for _, e := range result.Entries {
		switch e.Candidate.Label {
		case "Home → A → C → B", "Home → C → B → A":
			if e.Schedule.Failure != domain.FailureCostProvider {
				t.Fatalf("%s: failure = %q, want cost_provider", e.Candidate.Label, e.Schedule.Failure)
			}
		default:
			if e.Schedule.Failed() {
				t.Fatalf("%s failed: %s", e.Candidate.Label, e.Schedule.Reason)
			}
		}
	}
}

func TestPlannerStableIndexUnderConcurrency(t *testing.T) {
	provider := distance.NewMockDistanceProvider(testCoords, testPairs)
	b, _, _ := testBuilder()
	b.Provider = &delayProvider{next: provider}

	req := testRequest("A", "B", "C")
	want := EnumerateCandidates(req)

	result, err := NewPlanner(b, 6, 0).Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, e := range result.Entries {
		if e.Candidate.Index != i {
			t.Fatalf("entry %d carries index %d", i, e.Candidate.Index)
		}
		if e.Candidate.Label != want[i].Label {
			t.Fatalf("entry %d = %q, want %q", i, e.Candidate.Label, want[i].Label)
		}
		if e.Schedule.Failed() {
			t.Fatalf("entry %d failed: %s", i, e.Schedule.Reason)
		}
	}
}

func TestPlannerTimeoutMarksPendingCandidates(t *testing.T) {
	provider := distance.NewMockDistanceProvider(testCoords, testPairs)
	b, _, _ := testBuilder()
	b.Provider = &blockingProvider{next: provider, blockFirst: testCoords["addrB"]}

	start := time.Now()
	result, err := NewPlanner(b, 2, 50*time.Millisecond).Plan(context.Background(), testRequest("A", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("planning did not honour its timeout")
	}

	if result.Entries[0].Schedule.Failed() {
		t.Fatalf("entry 0 should have completed: %s", result.Entries[0].Schedule.Reason)
	}
	late := result.Entries[1].Schedule
	if late.Failure != domain.FailureTimeout {
		t.Fatalf("entry 1 failure = %q, want timeout", late.Failure)
	}
}

func TestPlannerOriginOnly(t *testing.T) {
	b, resolver, provider := testBuilder()
	result, err := NewPlanner(b, 1, 0).Plan(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", result.Len())
	}
	if resolver.Calls("addrHome") != 0 || provider.Calls() != 0 {
		t.Fatal("origin-only planning must not call external collaborators")
	}
}

func TestPlannerRejectsNilRequest(t *testing.T) {
	b, _, _ := testBuilder()
	if _, err := NewPlanner(b, 1, 0).Plan(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
	if _, err := (&Planner{}).Plan(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for missing builder")
	}
}
