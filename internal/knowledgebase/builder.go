package knowledgebase

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/tinylang"
	"github.com/smilemakc/trivially/internal/trivia"
)

// Builder accumulates decks and TriviaDefs into a KnowledgeBase, running the
// 6-step validation pipeline of §4.7 on every create_* call.
type Builder struct {
	kb     *KnowledgeBase
	boosts *boostCache
}

func NewBuilder() *Builder {
	return &Builder{kb: &KnowledgeBase{}, boosts: newBoostCache()}
}

// AddDeck registers a CardTable under deckID, scaling its popularity exactly
// once (§4.6) before it enters an ActiveDeck.
func (b *Builder) AddDeck(deckID uint64, table domain.CardTable) {
	deck.ScalePopularity(&table)
	b.kb.DeckIDs = append(b.kb.DeckIDs, deckID)
	b.kb.Decks = append(b.kb.Decks, deck.NewActiveDeck(table))
}

// Build finalizes the KnowledgeBase. Subsequent AddDeck/create_* calls on
// the same Builder are not supported once Build has run.
func (b *Builder) Build() *KnowledgeBase { return b.kb }

func dummyLeft() *domain.CardTable {
	return &domain.CardTable{Cards: []domain.Card{{Title: "_"}}}
}

// CreateCardStat validates and registers a §4.5 CardStat definition.
func (b *Builder) CreateCardStat(deckID uint64, category *string, statSource, question string, common trivia.MultipleChoiceCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}
	ie, err := parseAndOptimize(statSource, dummyLeft(), &ad.Data)
	if err != nil {
		return nil, err
	}
	if err := checkReturnType(statSource, ie, tinylang.TypeString); err != nil {
		return nil, err
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindMCCardStat, DeckIdx: idx, Question: question, Category: category, Stat: ie, MCCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateCardTag validates and registers a §4.5 CardTag definition.
func (b *Builder) CreateCardTag(deckID uint64, tagDefName, question string, common trivia.MultipleChoiceCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	tagIdx, err := resolveTagDef(ad, tagDefName)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindMCCardTag, DeckIdx: idx, Question: question, TagDefIdx: tagIdx, MCCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateTagCard validates and registers a §4.5 TagCard definition.
func (b *Builder) CreateTagCard(deckID uint64, tagDefName, question string, common trivia.MultipleChoiceCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	tagIdx, err := resolveTagDef(ad, tagDefName)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindMCTagCard, DeckIdx: idx, Question: question, TagDefIdx: tagIdx, MCCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreatePairing validates and registers a §4.5 Pairing definition. The
// predicate must type-check to Bool (§4.7 step 5).
func (b *Builder) CreatePairing(deckID uint64, pairingName, predicateSource, separator, question string, common trivia.MultipleChoiceCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	pairingIdx, err := resolvePairing(ad, pairingName)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}
	predicate, err := parseAndOptimize(predicateSource, &ad.Data, &ad.Data)
	if err != nil {
		return nil, err
	}
	if err := checkReturnType(predicateSource, predicate, tinylang.TypeBool); err != nil {
		return nil, err
	}

	for _, boost := range ad.Data.Pairings[pairingIdx].Boosts {
		if _, err := b.boosts.compile(boost); err != nil {
			return nil, domain.NewInvalidParamsError("boost expression " + boost + ": " + err.Error())
		}
	}

	def := &TriviaDef{
		ID: uuid.New(), Kind: KindMCPairing, DeckIdx: idx, Question: question,
		PairingIdx: pairingIdx, Predicate: predicate, Separator: separator, MCCommon: common,
	}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateRankingCard validates and registers a §4.5 Ranking Card definition.
func (b *Builder) CreateRankingCard(deckID uint64, category *string, statSource, question string, common trivia.RankingCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}
	ie, err := parseAndOptimize(statSource, dummyLeft(), &ad.Data)
	if err != nil {
		return nil, err
	}
	if err := checkReturnType(statSource, ie, tinylang.TypeNumber, tinylang.TypeDate); err != nil {
		return nil, err
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindRankCard, DeckIdx: idx, Question: question, Category: category, Stat: ie, RankCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateRankingCardCard validates and registers a §4.5 Ranking CardCard
// definition: a pairwise stat expression evaluated at (left, right).
func (b *Builder) CreateRankingCardCard(deckID uint64, statSource, separator, question string, common trivia.RankingCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	if err := common.Validate(); err != nil {
		return nil, domain.NewInvalidParamsError(err.Error())
	}
	ie, err := parseAndOptimize(statSource, &ad.Data, &ad.Data)
	if err != nil {
		return nil, err
	}
	if err := checkReturnType(statSource, ie, tinylang.TypeNumber, tinylang.TypeDate); err != nil {
		return nil, err
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindRankCardCard, DeckIdx: idx, Question: question, Stat: ie, Separator: separator, RankCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateHangmanCard validates and registers a §4.5 Hangman Card definition.
func (b *Builder) CreateHangmanCard(deckID uint64, category *string, question string, common trivia.HangmanCommon) (*TriviaDef, error) {
	_, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	def := &TriviaDef{ID: uuid.New(), Kind: KindHangCard, DeckIdx: idx, Question: question, Category: category, HangCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// CreateHangmanStat validates and registers a §4.5 Hangman Stat definition.
// The stat must type-check to String or StringArray (§4.7 step 5).
func (b *Builder) CreateHangmanStat(deckID uint64, category *string, statSource, question string, common trivia.HangmanCommon) (*TriviaDef, error) {
	ad, idx, err := resolveDeck(b.kb, deckID)
	if err != nil {
		return nil, err
	}
	ie, err := parseAndOptimize(statSource, dummyLeft(), &ad.Data)
	if err != nil {
		return nil, err
	}
	if err := checkReturnType(statSource, ie, tinylang.TypeString, tinylang.TypeStringArray); err != nil {
		return nil, err
	}

	def := &TriviaDef{ID: uuid.New(), Kind: KindHangStat, DeckIdx: idx, Question: question, Category: category, Stat: ie, HangCommon: common}
	b.kb.TriviaDefs = append(b.kb.TriviaDefs, def)
	return def, nil
}

// TriviaDefSpec is one declarative create_* call, used by LoadTriviaDefs to
// build a batch of definitions from configuration without aborting the
// whole KnowledgeBase on the first rejected one.
type TriviaDefSpec struct {
	Create func(b *Builder) (*TriviaDef, error)
	Label  string // for logging only
}

// LoadTriviaDefs runs each spec's Create call, logging and skipping (rather
// than aborting on) any that fail validation — a single malformed TriviaDef
// must not take down the whole KnowledgeBase. Each rejection is logged at
// warn level and returned as an error Callout.
func LoadTriviaDefs(b *Builder, specs []TriviaDefSpec) []domain.Callout {
	var callouts []domain.Callout
	for _, spec := range specs {
		if _, err := spec.Create(b); err != nil {
			log.Warn().Err(err).Str("trivia_def", spec.Label).Msg("rejected trivia definition")
			callouts = append(callouts, domain.CalloutError(spec.Label+": "+err.Error()))
		}
	}
	return callouts
}
