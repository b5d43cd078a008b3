package trigger

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns registered names that fuzzy-match query, best first.
// At most limit names are returned; limit <= 0 means no limit.
func (r *Registry) Suggest(query string, limit int) []string {
	query = Normalize(query)
	if query == "" {
		return nil
	}
	names := r.Names()
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
