package clean

// MissingCode marks a row whose value maps to no level.
const MissingCode = -1

// Factor is a categorical column: a fixed, ordered set of legal levels
// plus one code per row indexing into it. The level set is the full
// canonical enumeration for the column, whether or not every level was
// observed. Missing values carry [MissingCode], which is distinct from
// every level.
type Factor struct {
	levels []string
	codes  []int
}

// newFactor builds a factor over the canonical levels from per-row
// values, where nil marks a missing value. Every value must be a level
// or nil; the standardization mappers guarantee that.
func newFactor(levels []string, values []any) Factor {
	index := make(map[string]int, len(levels))
	for i, level := range levels {
		index[level] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			codes[i] = index[s]
		} else {
			codes[i] = MissingCode
		}
	}
	return Factor{levels: levels, codes: codes}
}

// Levels returns the ordered distinct levels.
func (f Factor) Levels() []string {
	return append([]string(nil), f.levels...)
}

// Codes returns one code per row; [MissingCode] marks missing values.
func (f Factor) Codes() []int {
	return append([]int(nil), f.codes...)
}

// Value returns the level for row i, or false for a missing value.
func (f Factor) Value(i int) (string, bool) {
	if i < 0 || i >= len(f.codes) || f.codes[i] == MissingCode {
		return "", false
	}
	return f.levels[f.codes[i]], true
}

// Len returns the number of rows.
func (f Factor) Len() int { return len(f.codes) }
