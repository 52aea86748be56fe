package settings

import "sort"

// Matrix maps setting keys to the values a build should be repeated with.
type Matrix map[string][]string

// Combinations returns base overlaid with every cartesian product
// combination of the matrix. Keys are sorted alphabetically and the first
// key varies slowest. An empty matrix yields base alone.
func (m Matrix) Combinations(base Settings) ([]Settings, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if len(m[k]) == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []Settings{base}
	for _, k := range keys {
		values := m[k]
		next := make([]Settings, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				s := prev
				if err := s.Set(k, v); err != nil {
					return nil, err
				}
				next = append(next, s)
			}
		}
		result = next
	}
	return result, nil
}

// CombinationCount returns the number of combinations Combinations yields.
func (m Matrix) CombinationCount() int {
	count := 1
	for _, v := range m {
		if len(v) > 0 {
			count *= len(v)
		}
	}
	return count
}
