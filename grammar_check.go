package pegstack

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Check returns the shape errors recorded while rules were defined
// and a `*ResolutionError` for every reference to an undefined rule,
// including references made from embedded grammars.
func (g *Grammar) Check() error {
	return g.check(map[*Grammar]struct{}{})
}

func (g *Grammar) check(seen map[*Grammar]struct{}) error {
	if _, ok := seen[g]; ok {
		return nil
	}
	seen[g] = struct{}{}

	errs := append([]error(nil), g.errors...)
	for _, name := range g.names {
		reported := map[string]struct{}{}
		Inspect(g.rules[name], func(e Expr) bool {
			switch n := e.(type) {
			case *RuleExpr:
				if _, ok := g.rules[n.Name]; ok {
					break
				}
				if _, ok := reported[n.Name]; ok {
					break
				}
				reported[n.Name] = struct{}{}
				errs = append(errs, g.resolutionError(n.Name, name))
			case *EmbedExpr:
				if n.Grammar == nil {
					break
				}
				if _, ok := n.Grammar.rules[n.Main]; !ok {
					errs = append(errs, n.Grammar.resolutionError(n.Main, name))
				}
				if err := n.Grammar.check(seen); err != nil {
					errs = append(errs, err)
				}
			}
			return true
		})
	}
	return errors.Join(errs...)
}

func (g *Grammar) resolutionError(name, referrer string) *ResolutionError {
	return &ResolutionError{
		Name:       name,
		Referrer:   referrer,
		Suggestion: g.suggest(name),
	}
}

// suggest returns the defined rule name that looks the most like
// `name`, or an empty string if none is close enough.
func (g *Grammar) suggest(name string) string {
	if name == "" || len(g.names) == 0 {
		return ""
	}

	// Rule names that contain all the characters of `name` in order
	// are the best candidates
	if ranks := fuzzy.RankFindFold(name, g.names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	// Otherwise settle for a typo within a third of the length
	var (
		best     string
		bestDist = len(name)/3 + 1
		lower    = strings.ToLower(name)
	)
	for _, candidate := range g.names {
		dist := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate))
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}
