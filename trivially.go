// Package trivially is the public SDK facade: it re-exports the types a host
// program needs to build a KnowledgeBase and pull Trivia out of it, so
// callers only import the root package rather than reaching into internal/.
package trivially

import (
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/knowledgebase"
	"github.com/smilemakc/trivially/internal/trivia"
)

type (
	// CardTable is the raw, unvalidated deck data a caller hands to AddDeck.
	CardTable = domain.CardTable
	Card      = domain.Card
	TagDef    = domain.TagDef
	StatDef   = domain.StatDef
	StatArray = domain.StatArray
	Pairing   = domain.Pairing
	Edge      = domain.Edge
	Callout   = domain.Callout

	// KnowledgeBase is the validated, query-time-safe aggregate produced by
	// Builder.Build.
	KnowledgeBase = knowledgebase.KnowledgeBase
	TriviaDef     = knowledgebase.TriviaDef
	Builder       = knowledgebase.Builder

	MultipleChoiceCommon = trivia.MultipleChoiceCommon
	RankingCommon         = trivia.RankingCommon
	HangmanCommon         = trivia.HangmanCommon
	RankingType           = trivia.RankingType

	Trivia         = trivia.Trivia
	TriviaExp      = trivia.TriviaExp
	StatArrayKind  = domain.StatArrayKind
)

const (
	RankAsc  = trivia.RankAsc
	RankDesc = trivia.RankDesc
	RankMin  = trivia.RankMin
	RankMax  = trivia.RankMax

	StatKindNumber = domain.StatKindNumber
	StatKindDate   = domain.StatKindDate
	StatKindString = domain.StatKindString
	StatKindLatLng = domain.StatKindLatLng
)

// IsNotEnoughData reports whether err is the generation-time error a
// TriviaDef.GetTrivia call returns when the deck can't supply enough
// distinct candidates, as opposed to a build-time configuration mistake.
func IsNotEnoughData(err error) bool { return domain.IsNotEnoughData(err) }
