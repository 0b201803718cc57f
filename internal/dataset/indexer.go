package dataset

import "sort"

// TrainIdentities returns the distinct identity ids among train-role
// records, sorted in lexical byte order. That order is a load-bearing
// contract: downstream model class outputs depend on it, so it must be
// identical on every run over an unchanged train set.
func TrainIdentities(records []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Role != RoleTrain {
			continue
		}
		seen[rec.IdentityID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AssignClassIndexes computes the identity-to-class-index mapping from the
// train-role records and writes the index onto each of them. The mapping
// is a bijection from the distinct train identities onto [0, K) in lexical
// identity order. Query and gallery records are never touched and never
// extend the mapping, even when their identities overlap the train set.
// Re-running on an unchanged train set reproduces identical indexes.
func AssignClassIndexes(records []Record) map[string]int {
	ids := TrainIdentities(records)
	classes := make(map[string]int, len(ids))
	for i, id := range ids {
		classes[id] = i
	}
	for i := range records {
		if records[i].Role != RoleTrain {
			continue
		}
		records[i].Class = NewClassIndex(classes[records[i].IdentityID])
	}
	return classes
}
