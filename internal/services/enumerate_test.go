package services

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

func TestPermutationsCountAndDistinct(t *testing.T) {
	for n := 0; n <= 6; n++ {
		perms := Permutations(n)
		if len(perms) != factorial(n) {
			t.Fatalf("n=%d: got %d orderings, want %d", n, len(perms), factorial(n))
		}

		seen := make(map[string]bool, len(perms))
		for _, p := range perms {
			if len(p) != n {
				t.Fatalf("n=%d: ordering %v has length %d", n, p, len(p))
			}

			sorted := append([]int(nil), p...)
			sort.Ints(sorted)
			for i, v := range sorted {
				if v != i {
					t.Fatalf("n=%d: %v is not a permutation of 0..%d", n, p, n-1)
				}
			}

			key := fmt.Sprint(p)
			if seen[key] {
				t.Fatalf("n=%d: duplicate ordering %v", n, p)
			}
			seen[key] = true
		}
	}
}

func TestPermutationsLexicographic(t *testing.T) {
	got := fmt.Sprint(Permutations(3))
	want := "[[0 1 2] [0 2 1] [1 0 2] [1 2 0] [2 0 1] [2 1 0]]"
	if got != want {
		t.Fatalf("Permutations(3) = %s, want %s", got, want)
	}

	if Permutations(-1) != nil {
		t.Fatal("expected nil for negative n")
	}
}

func TestEnumerateCandidates(t *testing.T) {
	cands := EnumerateCandidates(testRequest("A", "B"))
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Label != "Home → A → B" || cands[1].Label != "Home → B → A" {
		t.Fatalf("unexpected labels %q, %q", cands[0].Label, cands[1].Label)
	}
	for i, c := range cands {
		if c.Index != i {
			t.Fatalf("candidate %d has index %d", i, c.Index)
		}
	}

	wp := strings.Join(cands[1].Waypoints("addrHome"), ",")
	if wp != "addrHome,addrB,addrA" {
		t.Fatalf("waypoints = %s", wp)
	}
}

func TestEnumerateCandidatesEdgeSizes(t *testing.T) {
	none := EnumerateCandidates(testRequest())
	if len(none) != 1 {
		t.Fatalf("N=0: expected 1 candidate, got %d", len(none))
	}
	if len(none[0].Stops) != 0 || none[0].Label != "Home" {
		t.Fatalf("N=0: unexpected candidate %+v", none[0])
	}

	one := EnumerateCandidates(testRequest("A"))
	if len(one) != 1 || one[0].Label != "Home → A" {
		t.Fatalf("N=1: unexpected candidates %+v", one)
	}
}
