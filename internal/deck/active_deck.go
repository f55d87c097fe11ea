package deck

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/sampling"
)

// Edge is one adjacency-list entry of an ActivePairing: a right-hand card
// index reachable from some left-hand card, plus the edge's optional info.
type Edge struct {
	Right int
	Info  *string
}

// ActivePairing is a CardTable pairing pre-filtered to enabled endpoints,
// indexed both for existence checks and for enumeration. Grounded on
// trivia/types.rs's ActivePairing{edge_infos: BTreeMap<(usize,usize), ...>}.
type ActivePairing struct {
	byPair map[[2]int]*string
	byLeft map[int][]Edge
}

// HasEdge reports whether an edge from left to right exists, and its info.
func (p *ActivePairing) HasEdge(left, right int) (*string, bool) {
	info, ok := p.byPair[[2]int{left, right}]
	return info, ok
}

// EdgesFrom returns the sorted-by-right adjacency list for left.
func (p *ActivePairing) EdgesFrom(left int) []Edge {
	return p.byLeft[left]
}

func buildActivePairing(table *domain.CardTable, p *domain.Pairing) *ActivePairing {
	ap := &ActivePairing{byPair: map[[2]int]*string{}, byLeft: map[int][]Edge{}}
	for _, e := range p.Data {
		if table.Cards[e.Left].IsDisabled || table.Cards[e.Right].IsDisabled {
			continue
		}
		ap.byPair[[2]int{e.Left, e.Right}] = e.Info
		ap.byLeft[e.Left] = append(ap.byLeft[e.Left], Edge{Right: e.Right, Info: e.Info})
		if p.IsSymmetric {
			ap.byPair[[2]int{e.Right, e.Left}] = e.Info
			ap.byLeft[e.Right] = append(ap.byLeft[e.Right], Edge{Right: e.Left, Info: e.Info})
		}
	}
	for left := range ap.byLeft {
		sort.Slice(ap.byLeft[left], func(i, j int) bool {
			return ap.byLeft[left][i].Right < ap.byLeft[left][j].Right
		})
	}
	return ap
}

// ActiveDeck wraps a CardTable with pairing indexes, tag inverted indexes,
// and a lazy difficulty -> DeckView cache. Created once from a CardTable and
// held read-only thereafter, except for the view cache (§5's interior
// mutability): a caller issuing concurrent generation calls against the same
// ActiveDeck must serialize them externally (see internal/knowledgebase).
type ActiveDeck struct {
	Data     domain.CardTable
	Pairings []*ActivePairing
	// TagIndex[d] maps a tag value to the sorted card indices carrying it, for
	// tag-def d.
	TagIndex []map[string][]int

	views map[uint64]*DeckView
}

// NewActiveDeck builds an ActiveDeck from a CardTable. The table's card
// popularities must already be normalized via ScalePopularity.
func NewActiveDeck(table domain.CardTable) *ActiveDeck {
	pairings := make([]*ActivePairing, len(table.Pairings))
	for i := range table.Pairings {
		pairings[i] = buildActivePairing(&table, &table.Pairings[i])
	}

	tagIndex := make([]map[string][]int, len(table.TagDefs))
	for d, td := range table.TagDefs {
		m := map[string][]int{}
		for ci, cellTags := range td.Values {
			for _, v := range cellTags {
				m[v] = append(m[v], ci)
			}
		}
		for v := range m {
			sort.Ints(m[v])
		}
		tagIndex[d] = m
	}

	return &ActiveDeck{
		Data:     table,
		Pairings: pairings,
		TagIndex: tagIndex,
		views:    map[uint64]*DeckView{},
	}
}

func (a *ActiveDeck) viewFor(difficulty float64) *DeckView {
	key := math.Float64bits(difficulty)
	if v, ok := a.views[key]; ok {
		return v
	}
	log.Debug().Float64("difficulty", difficulty).Msg("building new deck view")
	v := newDeckView(&a.Data, difficulty)
	a.views[key] = v
	return v
}

// WithView runs f against the (possibly newly built, possibly cached)
// DeckView for difficulty, guaranteeing the view's SampleTree is reset on
// every exit path — the Go equivalent of the original's DeckViewIter Drop.
func WithView[R any](a *ActiveDeck, difficulty float64, f func(*DeckViewIter) R) R {
	view := a.viewFor(difficulty)
	it := view.iter()
	defer it.release()
	return f(it)
}

// DeckView is a SampleTree<card_index> whose initial weights are
// exp(-difficulty*popularity) for each enabled card.
type DeckView struct {
	tree *sampling.SampleTree[int]
}

func newDeckView(table *domain.CardTable, difficulty float64) *DeckView {
	var weights []float64
	var keys []int
	for i, c := range table.Cards {
		if c.IsDisabled {
			continue
		}
		weights = append(weights, math.Exp(-difficulty*c.Popularity))
		keys = append(keys, i)
	}
	return &DeckView{tree: sampling.NewSampleTree(weights, keys)}
}

func (v *DeckView) iter() *DeckViewIter { return &DeckViewIter{view: v} }

// DeckViewIter draws card indices without replacement from a DeckView.
// Callers must not retain it past the WithView call that produced it.
type DeckViewIter struct {
	view *DeckView
}

// Next draws the next card index, or (_, false) once the view is exhausted.
func (it *DeckViewIter) Next() (int, bool) {
	return it.view.tree.Sample()
}

func (it *DeckViewIter) release() {
	it.view.tree.Reset()
}
