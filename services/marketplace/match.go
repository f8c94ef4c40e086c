package marketplace

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// maximum edit distance still considered "probably meant this"
const matchThreshold = 3

// MatchCategory resolves a user-typed name against the loaded category
// list: exact match first, then nearest by edit distance. The second
// return is false when nothing is plausibly close.
func (b *Browser) MatchCategory(name string) (string, bool) {
	b.mu.Lock()
	categories := b.categories
	b.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}

	best := ""
	bestDistance := matchThreshold + 1
	for _, category := range categories {
		candidate := strings.ToLower(category.Name)
		if candidate == needle {
			return category.Name, true
		}
		distance := matchr.Levenshtein(needle, candidate)
		if distance < bestDistance {
			bestDistance = distance
			best = category.Name
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
