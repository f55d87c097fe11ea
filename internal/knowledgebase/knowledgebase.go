// Package knowledgebase implements the KnowledgeBase builder of §4.7: the
// validated, query-time-safe aggregate of ActiveDecks and TriviaDefs.
// Grounded on original_source/.../trivia/mod.rs's create_* constructors.
package knowledgebase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/tinylang"
	"github.com/smilemakc/trivially/internal/trivia"
)

// KnowledgeBase is a read-only (except the per-ActiveDeck view cache)
// aggregate of decks and validated TriviaDefs, built once via Builder and
// held for the lifetime of the host process. Concurrent GetTrivia calls
// against the same KnowledgeBase must be serialized by the caller, per §5.
type KnowledgeBase struct {
	DeckIDs []uint64
	Decks   []*deck.ActiveDeck

	TriviaDefs []*TriviaDef
}

func (kb *KnowledgeBase) deckIndex(deckID uint64) (int, bool) {
	for i, id := range kb.DeckIDs {
		if id == deckID {
			return i, true
		}
	}
	return -1, false
}

// TriviaDefKind discriminates the eight generator variants of §4.5.
type TriviaDefKind int

const (
	KindMCCardStat TriviaDefKind = iota
	KindMCCardTag
	KindMCTagCard
	KindMCPairing
	KindRankCard
	KindRankCardCard
	KindHangCard
	KindHangStat
)

// TriviaDef is a fully validated, semantically-safe trivia generator: every
// expression it holds has already been parsed, type-checked, and matched
// against its slot's expected return type, so GetTrivia can only fail with a
// generation-time NotEnoughData/NotPlural error, never a parse/type/name
// error (§4.7's closing guarantee).
type TriviaDef struct {
	ID      uuid.UUID
	Kind    TriviaDefKind
	DeckIdx int

	Question  string
	Category  *string
	TagDefIdx int
	PairingIdx int
	Separator string

	Stat      *tinylang.IntermediateExpr
	Predicate *tinylang.IntermediateExpr

	MCCommon   trivia.MultipleChoiceCommon
	RankCommon trivia.RankingCommon
	HangCommon trivia.HangmanCommon
}

// GetTrivia dispatches to the matching generator in internal/trivia.
func (d *TriviaDef) GetTrivia(kb *KnowledgeBase, difficulty float64) (trivia.Trivia, []trivia.TriviaExp, error) {
	ad := kb.Decks[d.DeckIdx]
	switch d.Kind {
	case KindMCCardStat:
		return trivia.CardStat(ad, difficulty, d.MCCommon, d.Category, d.Stat, d.Question)
	case KindMCCardTag:
		return trivia.CardTag(ad, difficulty, d.MCCommon, d.TagDefIdx, d.Question)
	case KindMCTagCard:
		return trivia.TagCard(ad, difficulty, d.MCCommon, d.TagDefIdx, d.Question)
	case KindMCPairing:
		return trivia.Pairing(ad, difficulty, d.MCCommon, d.PairingIdx, d.Predicate, d.Separator, d.Question)
	case KindRankCard:
		return trivia.Card(ad, difficulty, d.RankCommon, d.Category, d.Stat, d.Question)
	case KindRankCardCard:
		return trivia.CardCard(ad, difficulty, d.RankCommon, d.Stat, d.Separator, d.Question)
	case KindHangCard:
		return trivia.HangmanCard(ad, difficulty, d.HangCommon, d.Category, d.Question)
	case KindHangStat:
		return trivia.HangmanStat(ad, difficulty, d.HangCommon, d.Category, d.Stat, d.Question)
	default:
		return trivia.Trivia{}, nil, fmt.Errorf("unknown trivia def kind %d", d.Kind)
	}
}

func resolveDeck(kb *KnowledgeBase, deckID uint64) (*deck.ActiveDeck, int, error) {
	idx, ok := kb.deckIndex(deckID)
	if !ok {
		return nil, 0, domain.NewInvalidDeckIDError(deckID)
	}
	return kb.Decks[idx], idx, nil
}

func resolveTagDef(ad *deck.ActiveDeck, name string) (int, error) {
	for i, td := range ad.Data.TagDefs {
		if td.Label == name {
			return i, nil
		}
	}
	return 0, domain.NewInvalidTagNameError(name)
}

func resolvePairing(ad *deck.ActiveDeck, name string) (int, error) {
	for i, p := range ad.Data.Pairings {
		if p.Label == name {
			return i, nil
		}
	}
	return 0, domain.NewInvalidPairingNameError(name)
}

// parseAndOptimize runs steps 3-4 of §4.7: TinyLang parse, then
// optimize+type-check with L"..." bound to left and R"..." bound to right.
// Single-card expressions pass a one-card placeholder as left and the deck
// as right; two-card expressions, like Pairing's predicate, pass the deck
// on both sides.
func parseAndOptimize(source string, left, right *domain.CardTable) (*tinylang.IntermediateExpr, error) {
	ast, err := tinylang.Parse(source)
	if err != nil {
		return nil, domain.NewTinylangSyntaxError(source, err.Error())
	}
	ie, err := tinylang.Optimize(ast, left, right)
	if err != nil {
		return nil, domain.NewTinylangTypeError(source, err.Error())
	}
	return ie, nil
}

// checkReturnType enforces step 5 of §4.7.
func checkReturnType(source string, ie *tinylang.IntermediateExpr, allowed ...tinylang.ExprType) error {
	got := ie.GetType()
	for _, t := range allowed {
		if got == t {
			return nil
		}
	}
	return domain.NewTinylangTypeError(source, fmt.Sprintf("expected one of %v, got %s", allowed, got))
}
