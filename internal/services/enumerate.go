package services

import "dropoff-route-planner/internal/domain"

// Permutations returns every ordering of the indices 0..n-1 exactly once,
// in lexicographic order. n = 0 yields a single empty ordering.
func Permutations(n int) [][]int {
	if n < 0 {
		return nil
	}

	cur := make([]int, n)
	for i := range cur {
		cur[i] = i
	}

	out := make([][]int, 0, factorial(n))
	for {
		out = append(out, append([]int(nil), cur...))
		if !nextPermutation(cur) {
			return out
		}
	}
}

// nextPermutation rearranges p into its lexicographic successor.
// It reports false once p is the last (descending) ordering.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// EnumerateCandidates builds one Candidate per ordering of the request's destinations.
// Indexes follow enumeration order and are fixed before any schedule is computed.
func EnumerateCandidates(req *domain.PlanningRequest) []domain.Candidate {
	orders := Permutations(len(req.Destinations))

	candidates := make([]domain.Candidate, 0, len(orders))
	for i, order := range orders {
		stops := make([]domain.Destination, 0, len(order))
		for _, idx := range order {
			stops = append(stops, req.Destinations[idx])
		}
		candidates = append(candidates, domain.NewCandidate(i, req.OriginName, stops))
	}

	return candidates
}
