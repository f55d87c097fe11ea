// Package storage is the §6 persistence boundary: it never appears below
// internal/knowledgebase in the import graph, and none of internal/tinylang,
// internal/sampling, internal/deck, internal/selector, or internal/trivia
// may import it. Adapted from the teacher's BunStore into a DeckStore that
// persists the opaque-JSON-blob Deck record as a single jsonb column instead
// of the teacher's normalized workflow/execution/event tables.
package storage

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/smilemakc/trivially/internal/domain"
)

// DeckModel is the jsonb-backed row shape for a Deck, matching the teacher's
// WorkflowModel{Spec map[string]any `bun:"spec,type:jsonb"`} pattern: the
// CardTable itself is never normalized into columns.
type DeckModel struct {
	bun.BaseModel `bun:"table:decks,alias:d"`

	ID            uint64           `bun:"id,pk"`
	Revision      uint64           `bun:"revision"`
	Title         string           `bun:"title"`
	SpreadsheetID string           `bun:"spreadsheet_id"`
	ImageURL      *string          `bun:"image_url"`
	Data          domain.CardTable `bun:"data,type:jsonb"`
	UpdatedAt     time.Time        `bun:"updated_at"`
}

func newDeckModel(d domain.Deck) *DeckModel {
	return &DeckModel{
		ID: d.ID, Revision: d.Revision, Title: d.Title,
		SpreadsheetID: d.SpreadsheetID, ImageURL: d.ImageURL, Data: d.Data,
		UpdatedAt: time.Now(),
	}
}

func (m *DeckModel) toDomain() domain.Deck {
	return domain.Deck{
		ID: m.ID, Revision: m.Revision, Title: m.Title,
		SpreadsheetID: m.SpreadsheetID, ImageURL: m.ImageURL, Data: m.Data,
	}
}

// DeckStore is a Postgres-backed Deck repository.
type DeckStore struct {
	db *bun.DB
}

func NewDeckStore(dsn string) *DeckStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &DeckStore{db: db}
}

func (s *DeckStore) InitSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*DeckModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Save upserts a Deck keyed by ID. On conflict every stored column,
// Revision included, is overwritten with d's values.
func (s *DeckStore) Save(ctx context.Context, d domain.Deck) error {
	model := newDeckModel(d)
	_, err := s.db.NewInsert().Model(model).
		On("CONFLICT (id) DO UPDATE").
		Set("revision = EXCLUDED.revision, title = EXCLUDED.title, spreadsheet_id = EXCLUDED.spreadsheet_id, image_url = EXCLUDED.image_url, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

var ErrDeckNotFound = errors.New("deck not found")

func (s *DeckStore) Load(ctx context.Context, id uint64) (domain.Deck, error) {
	model := new(DeckModel)
	err := s.db.NewSelect().Model(model).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Deck{}, ErrDeckNotFound
	}
	if err != nil {
		return domain.Deck{}, err
	}
	return model.toDomain(), nil
}

// ImageCacheKey hashes a deck's ImageURL into a filesystem/cache-safe key,
// so a CDN cache layer never has to store or compare raw third-party URLs.
func ImageCacheKey(imageURL string) string {
	sum := blake2b.Sum256([]byte(imageURL))
	return hex.EncodeToString(sum[:])
}
