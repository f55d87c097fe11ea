package knowledgebase

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/smilemakc/trivially/internal/domain"
)

// boostCardView is the struct shape a Pairing.Boosts expression sees for
// each endpoint card, exposed via expr.Env so boost sources can write
// "Left.Popularity * 2" instead of untyped map lookups.
type boostCardView struct {
	Title      string
	Category   string
	Popularity float64
}

type boostEnv struct {
	Left  boostCardView
	Right boostCardView
}

func toBoostView(c domain.Card) boostCardView {
	cat := ""
	if c.Category != nil {
		cat = *c.Category
	}
	return boostCardView{Title: c.Title, Category: cat, Popularity: c.Popularity}
}

// boostCache compiles and caches Pairing.Boosts expressions, modeled on
// internal/application/executor/conditions.go's ConditionEvaluator
// compiledCache — a read-mostly map[string]*vm.Program guarded by a
// sync.RWMutex, except this cache evaluates to float64 instead of bool.
type boostCache struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newBoostCache() *boostCache {
	return &boostCache{programs: map[string]*vm.Program{}}
}

func (c *boostCache) compile(src string) (*vm.Program, error) {
	c.mu.RLock()
	p, ok := c.programs[src]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := expr.Compile(src, expr.Env(boostEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.programs[src] = p
	c.mu.Unlock()
	return p, nil
}

// Evaluate runs a compiled boost expression against a pairing edge's two
// endpoint cards, returning a multiplier a caller can fold into selection
// weight.
func (c *boostCache) Evaluate(src string, left, right domain.Card) (float64, error) {
	p, err := c.compile(src)
	if err != nil {
		return 0, err
	}
	out, err := expr.Run(p, boostEnv{Left: toBoostView(left), Right: toBoostView(right)})
	if err != nil {
		return 0, err
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("boost expression %q did not evaluate to a number", src)
	}
	return f, nil
}
