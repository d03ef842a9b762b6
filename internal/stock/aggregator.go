package stock

// Aggregator merges candidates fetched in per-warehouse passes into one candidate per external id.
// It is owned by single account pipeline and is not safe for concurrent use.
type Aggregator struct {
	candidates map[string]*Candidate
	order      []string
}

// NewAggregator returns new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		candidates: make(map[string]*Candidate),
	}
}

// Add merges candidate into aggregated set.
// The first candidate with given external id sets name, type and price, later ones only add their quantity.
// Unresolved candidates contribute nothing to quantity.
func (a *Aggregator) Add(candidate Candidate) {
	existing, ok := a.candidates[candidate.ExternalID]
	if !ok {
		c := candidate
		a.candidates[candidate.ExternalID] = &c
		a.order = append(a.order, candidate.ExternalID)
		return
	}

	if !candidate.Resolved {
		return
	}

	if !existing.Resolved {
		existing.Quantity = candidate.Quantity
		existing.Resolved = true
		return
	}

	existing.Quantity = existing.Quantity.Add(candidate.Quantity)
}

// Len returns number of distinct external ids.
func (a *Aggregator) Len() int {
	return len(a.candidates)
}

// Candidates returns merged candidates.
func (a *Aggregator) Candidates() []Candidate {
	result := make([]Candidate, 0, len(a.order))
	for _, id := range a.order {
		result = append(result, *a.candidates[id])
	}
	return result
}
