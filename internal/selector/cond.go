// Package selector implements the Select<Item, Cond> family: functions that
// draw up to n items of a given kind from an ActiveDeck, difficulty-weighted
// and filtered by a condition list. Grounded on
// original_source/.../trivia/engine.rs.
package selector

import "github.com/smilemakc/trivially/internal/tinylang"

// CardCondKind discriminates the conditions a Card selector understands.
type CardCondKind int

const (
	CondCategory CardCondKind = iota
	CondEdgeOut
	CondNoEdge
	CondExpressionOut
	CondExpressionIn
	CondPredicate
	CondTag
	CondNoTag
	CondTagOut
)

// CardCond is one filter applied to a candidate card. Only the fields
// relevant to Kind are populated.
type CardCond struct {
	Kind CardCondKind

	Category string // CondCategory

	PairingIdx      int // CondEdgeOut, CondNoEdge
	InstanceCardIdx int // CondNoEdge: the l card of NoEdge(l, p); the candidate is the edge's right end

	Expr             *tinylang.IntermediateExpr // CondExpressionOut/In, CondPredicate
	PredicateLeftIdx *int                       // CondPredicate's optional l; nil means 0

	TagDefIdx int    // CondTag, CondNoTag, CondTagOut
	TagValue  string // CondTag, CondNoTag
}

func Category(c string) CardCond { return CardCond{Kind: CondCategory, Category: c} }

func EdgeOut(pairingIdx int) CardCond { return CardCond{Kind: CondEdgeOut, PairingIdx: pairingIdx} }

func NoEdge(instanceCardIdx, pairingIdx int) CardCond {
	return CardCond{Kind: CondNoEdge, PairingIdx: pairingIdx, InstanceCardIdx: instanceCardIdx}
}

func ExpressionOut(expr *tinylang.IntermediateExpr) CardCond {
	return CardCond{Kind: CondExpressionOut, Expr: expr}
}

func ExpressionIn(expr *tinylang.IntermediateExpr) CardCond {
	return CardCond{Kind: CondExpressionIn, Expr: expr}
}

func Predicate(expr *tinylang.IntermediateExpr, left *int) CardCond {
	return CardCond{Kind: CondPredicate, Expr: expr, PredicateLeftIdx: left}
}

func Tag(tagDefIdx int, value string) CardCond {
	return CardCond{Kind: CondTag, TagDefIdx: tagDefIdx, TagValue: value}
}

func NoTag(tagDefIdx int, value string) CardCond {
	return CardCond{Kind: CondNoTag, TagDefIdx: tagDefIdx, TagValue: value}
}

func TagOut(tagDefIdx int) CardCond { return CardCond{Kind: CondTagOut, TagDefIdx: tagDefIdx} }

// TagSelectorCondKind discriminates the conditions a Tag selector understands.
type TagSelectorCondKind int

const (
	TagCondEdge TagSelectorCondKind = iota
	TagCondNoEdge
)

// TagSelectorCond filters the Tag selector: Edge draws uniformly from one
// card's own tags; NoEdge draws difficulty-weighted from the deck excluding
// one card's tags.
type TagSelectorCond struct {
	Kind    TagSelectorCondKind
	CardIdx int
}

func TagEdge(cardIdx int) TagSelectorCond   { return TagSelectorCond{Kind: TagCondEdge, CardIdx: cardIdx} }
func TagNoEdge(cardIdx int) TagSelectorCond { return TagSelectorCond{Kind: TagCondNoEdge, CardIdx: cardIdx} }
