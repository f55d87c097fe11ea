package trivially

import (
	"github.com/rs/zerolog/log"

	"github.com/smilemakc/trivially/internal/knowledgebase"
)

// NewBuilder starts a fresh KnowledgeBase build. Call AddDeck for every deck
// the host wants to serve trivia from, then the Create* methods for each
// trivia definition, then Build.
func NewBuilder() *Builder { return knowledgebase.NewBuilder() }

// MustBuildKnowledgeBase runs build against a fresh Builder and fatally logs
// (rather than returning an error) if build itself panics on programmer
// error — it never aborts on a single rejected TriviaDef, since Builder's
// Create* methods already return per-definition errors for that. This
// mirrors the teacher's log.Fatal().Err(err).Msg(...) composition-root idiom
// for setup failures that have no sane recovery.
func MustBuildKnowledgeBase(build func(b *Builder)) *KnowledgeBase {
	b := NewBuilder()
	defer func() {
		if r := recover(); r != nil {
			log.Fatal().Interface("panic", r).Msg("knowledge base build panicked")
		}
	}()
	build(b)
	return b.Build()
}
