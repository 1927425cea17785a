package cleaner

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// AliasTable remaps raw provider/specialty labels onto canonical ones.
// A value may itself be a comma-separated list of canonical labels; the
// expansion is flattened one level.
type AliasTable map[string]string

// LoadAliasTable reads an alias table from a JSON object file. Each run
// owns its own loaded copy; there is no package-level table.
func LoadAliasTable(path string) (AliasTable, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias table: %w", err)
	}
	var table AliasTable
	if err := json.Unmarshal(blob, &table); err != nil {
		return nil, fmt.Errorf("parse alias table %s: %w", path, err)
	}
	return table, nil
}

var connectiveTokens = map[string]struct{}{
	"And": {},
	"Y":   {},
}

// CleanProvider normalizes raw multi-valued category text into a
// sorted, deduplicated, comma-joined tag string. The same multiset of
// raw tokens always yields the same output regardless of input order.
func CleanProvider(raw *string, aliases AliasTable) *string {
	if raw == nil {
		return nil
	}

	s := strings.NewReplacer("\n", "", "\r", "").Replace(*raw)
	s = strings.ReplaceAll(s, ",", "|")
	s = titleCase(s)

	seen := map[string]struct{}{}
	for _, token := range strings.Split(s, "|") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, connective := connectiveTokens[token]; connective {
			continue
		}
		mapped := token
		if canonical, ok := aliases[token]; ok {
			mapped = canonical
		}
		// Alias values may expand to several canonical labels.
		for _, label := range strings.Split(mapped, ", ") {
			label = strings.TrimSpace(label)
			if label != "" {
				seen[label] = struct{}{}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out := CollapseWhitespace(strings.Join(tags, ", "))
	return &out
}
