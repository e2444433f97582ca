package store

import (
	"context"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/jmoiron/sqlx"
)

type MarshallStore struct {
	db *sqlx.DB
}

const (
	getMarshallByNameQuery = "SELECT * FROM marshalls WHERE name = ?"
	createMarshallQuery    = `
		INSERT INTO marshalls (id, name) VALUES
		(:id, :name)
	`
)

func NewMarshallStore(db *sqlx.DB) *MarshallStore {
	return &MarshallStore{db: db}
}

func (s *MarshallStore) GetMarshalls(ctx context.Context) ([]bracket.Marshall, error) {
	var marshalls []bracket.Marshall
	err := s.db.SelectContext(ctx, &marshalls, "SELECT * FROM marshalls ORDER BY name ASC")
	return marshalls, err
}

func (s *MarshallStore) GetMarshallByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (*bracket.Marshall, error) {
	var marshall bracket.Marshall
	err := tx.GetContext(ctx, &marshall, getMarshallByNameQuery, name)
	if err != nil {
		return nil, err
	}
	return &marshall, nil
}

func (s *MarshallStore) CreateMarshallTx(ctx context.Context, tx *sqlx.Tx, marshall *bracket.Marshall) error {
	_, err := tx.NamedExecContext(ctx, createMarshallQuery, marshall)
	return err
}
