package selector

import (
	"math"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/sampling"
	"github.com/smilemakc/trivially/internal/tinylang"
)

// CardMatch is one result of SelectCard: a candidate card index plus its
// evaluated stat values and, when drawn through the nested-pairing fast
// path, the traversed edge's info.
type CardMatch struct {
	Index       int
	Stats       map[string]tinylang.Value
	PairingInfo *string
	HasEdge     bool
}

// StatRequest names one stat expression a Card selection must evaluate and
// attach; the card is dropped if the expression is null for it.
type StatRequest struct {
	Label string
	Expr  *tinylang.IntermediateExpr
}

// NestedPairing short-circuits SelectCard to sampling weighted over a single
// pairing's edges out of a fixed left card, per §4.4.
type NestedPairing struct {
	Left  int
	Which int
}

// SelectCard draws up to n candidate card indices from the deck view at the
// given difficulty. With Pairing set, it samples weighted over that
// pairing's edges out of Pairing.Left, ignoring conds/stats. Otherwise it
// scans the view, keeping cards that satisfy every cond, evaluating stats at
// (0, idx) and dropping the card if any stat is null.
func SelectCard(ad *deck.ActiveDeck, difficulty float64, conds []CardCond, stats []StatRequest, pairing *NestedPairing, n int) []CardMatch {
	if pairing != nil {
		return selectPairingPartners(ad, difficulty, *pairing, n)
	}

	var out []CardMatch
	deck.WithView(ad, difficulty, func(it *deck.DeckViewIter) any {
		for len(out) < n {
			idx, ok := it.Next()
			if !ok {
				break
			}
			if !matchesAll(ad, conds, idx) {
				continue
			}
			vals, ok := evalStats(stats, idx)
			if !ok {
				continue
			}
			out = append(out, CardMatch{Index: idx, Stats: vals})
		}
		return nil
	})
	return out
}

func selectPairingPartners(ad *deck.ActiveDeck, difficulty float64, p NestedPairing, n int) []CardMatch {
	edges := ad.Pairings[p.Which].EdgesFrom(p.Left)
	if len(edges) == 0 {
		return nil
	}
	weights := make([]float64, len(edges))
	for i, e := range edges {
		weights[i] = math.Exp(-difficulty * ad.Data.Cards[e.Right].Popularity)
	}
	tree := sampling.NewSampleTree(weights, edges)

	var out []CardMatch
	for len(out) < n {
		e, ok := tree.Sample()
		if !ok {
			break
		}
		out = append(out, CardMatch{Index: e.Right, PairingInfo: e.Info, HasEdge: true})
	}
	return out
}

func evalStats(stats []StatRequest, idx int) (map[string]tinylang.Value, bool) {
	if len(stats) == 0 {
		return nil, true
	}
	vals := make(map[string]tinylang.Value, len(stats))
	for _, s := range stats {
		v, ok := s.Expr.GetValue(0, idx)
		if !ok {
			return nil, false
		}
		vals[s.Label] = v
	}
	return vals, true
}

func matchesAll(ad *deck.ActiveDeck, conds []CardCond, idx int) bool {
	for _, c := range conds {
		if !matchesCond(ad, c, idx) {
			return false
		}
	}
	return true
}

func matchesCond(ad *deck.ActiveDeck, c CardCond, idx int) bool {
	card := ad.Data.Cards[idx]
	switch c.Kind {
	case CondCategory:
		return card.Category != nil && *card.Category == c.Category
	case CondEdgeOut:
		return len(ad.Pairings[c.PairingIdx].EdgesFrom(idx)) > 0
	case CondNoEdge:
		_, ok := ad.Pairings[c.PairingIdx].HasEdge(c.InstanceCardIdx, idx)
		return !ok
	case CondExpressionOut:
		i := idx
		return c.Expr.HasVars(&i, nil)
	case CondExpressionIn:
		i := idx
		return c.Expr.HasVars(nil, &i)
	case CondPredicate:
		left := 0
		if c.PredicateLeftIdx != nil {
			left = *c.PredicateLeftIdx
		}
		v, ok := c.Expr.GetValue(left, idx)
		return ok && v.Type == tinylang.TypeBool && v.Bool
	case CondTag:
		return hasTagValue(ad, c.TagDefIdx, idx, c.TagValue)
	case CondNoTag:
		return !hasTagValue(ad, c.TagDefIdx, idx, c.TagValue)
	case CondTagOut:
		return len(ad.Data.TagDefs[c.TagDefIdx].Values[idx]) > 0
	}
	return false
}

func hasTagValue(ad *deck.ActiveDeck, tagDefIdx, cardIdx int, value string) bool {
	for _, v := range ad.Data.TagDefs[tagDefIdx].Values[cardIdx] {
		if v == value {
			return true
		}
	}
	return false
}

// SelectCategory draws up to n distinct non-null category strings, in
// difficulty-weighted order from the deck view.
func SelectCategory(ad *deck.ActiveDeck, difficulty float64, n int) []string {
	var out []string
	seen := map[string]bool{}
	deck.WithView(ad, difficulty, func(it *deck.DeckViewIter) any {
		for len(out) < n {
			idx, ok := it.Next()
			if !ok {
				break
			}
			cat := ad.Data.Cards[idx].Category
			if cat == nil || seen[*cat] {
				continue
			}
			seen[*cat] = true
			out = append(out, *cat)
		}
		return nil
	})
	return out
}

// SelectTag draws up to n distinct tag values for tag-def which, per cond.
func SelectTag(ad *deck.ActiveDeck, difficulty float64, tagDefIdx int, cond TagSelectorCond, n int) []string {
	if cond.Kind == TagCondEdge {
		values := ad.Data.TagDefs[tagDefIdx].Values[cond.CardIdx]
		return sampling.Unweighted(values, n)
	}

	prohibited := map[string]bool{}
	for _, v := range ad.Data.TagDefs[tagDefIdx].Values[cond.CardIdx] {
		prohibited[v] = true
	}

	var out []string
	seen := map[string]bool{}
	deck.WithView(ad, difficulty, func(it *deck.DeckViewIter) any {
		for len(out) < n {
			idx, ok := it.Next()
			if !ok {
				break
			}
			for _, v := range ad.Data.TagDefs[tagDefIdx].Values[idx] {
				if len(out) >= n {
					break
				}
				if seen[v] || prohibited[v] {
					continue
				}
				seen[v] = true
				out = append(out, v)
			}
		}
		return nil
	})
	return out
}

// StatMatch is one result of SelectStat.
type StatMatch struct {
	Index int
	Value tinylang.Value
}

// SelectStat is sugar for a single-stat Card selection.
func SelectStat(ad *deck.ActiveDeck, difficulty float64, expr *tinylang.IntermediateExpr, n int) []StatMatch {
	matches := SelectCard(ad, difficulty, nil, []StatRequest{{Label: "_", Expr: expr}}, nil, n)
	out := make([]StatMatch, len(matches))
	for i, m := range matches {
		out[i] = StatMatch{Index: m.Index, Value: m.Stats["_"]}
	}
	return out
}
