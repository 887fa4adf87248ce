package uuidscrub

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Restore replaces every token of m in content with its original UUID.
// Content marked as scrubbed cannot be restored without a mapping.
func Restore(content string, m *Mapping, wasScrubbed bool) (string, error) {
	if m.Len() == 0 {
		if wasScrubbed {
			return "", fmt.Errorf("content was scrubbed but no UUID mapping is available: %w", prepdir.ErrInvalidState)
		}
		return content, nil
	}

	// Longer tokens first so PLACEHOLDER_12 wins over PLACEHOLDER_1 at the same offset.
	tokens := m.Tokens()
	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i]) > len(tokens[j])
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, tok := range tokens {
		orig, _ := m.Original(tok)
		pairs = append(pairs, tok, orig)
	}
	return strings.NewReplacer(pairs...).Replace(content), nil
}
