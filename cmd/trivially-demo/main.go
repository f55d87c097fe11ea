// Command trivially-demo is the example composition root: it wires
// internal/config and internal/infrastructure/logger, builds a small
// KnowledgeBase by hand, and prints one generated Trivia to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/smilemakc/trivially"
	"github.com/smilemakc/trivially/internal/config"
	"github.com/smilemakc/trivially/internal/utils"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	log := trivially.SetupLogging(cfg.LogLevel)
	log.Info().Msg("starting trivially demo")

	difficulty := utils.DefaultValue(cfg.DefaultDifficulty, 0.5)

	kb := trivially.MustBuildKnowledgeBase(func(b *trivially.Builder) {
		b.AddDeck(1, demoDeck())
		common := trivially.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
		if _, err := b.CreateCardStat(1, nil, `R"Capital"`, "What is the capital of {}?", common); err != nil {
			log.Warn().Err(err).Msg("rejected demo trivia definition")
		}
	})

	for _, def := range kb.TriviaDefs {
		tv, exps, err := def.GetTrivia(kb, difficulty)
		if err != nil {
			log.Error().Err(err).Msg("generation failed")
			continue
		}
		fmt.Println(tv.Question)
		for _, opt := range tv.Options {
			fmt.Printf("  [%d] %s\n", opt.ID, opt.Answer)
		}
		fmt.Printf("  expectations: %d\n", len(exps))
	}
}

func demoDeck() trivially.CardTable {
	capitals := []string{"Paris", "Tokyo", "Rome", "Madrid"}
	cards := make([]trivially.Card, len(capitals))
	for i := range capitals {
		cards[i] = trivially.Card{Title: []string{"France", "Japan", "Italy", "Spain"}[i], Popularity: 1}
	}
	values := make([]*string, len(capitals))
	for i := range capitals {
		values[i] = &capitals[i]
	}
	return trivially.CardTable{
		Cards: cards,
		StatDefs: []trivially.StatDef{{
			Label: "Capital",
			Data:  trivially.StatArray{Kind: trivially.StatKindString, StringValues: values},
		}},
	}
}
