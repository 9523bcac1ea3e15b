package terminology

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSearcher ranks vocabulary concepts by pg_trgm similarity against a
// Postgres table. The vocab_concepts table mirrors the CSV sources, one row
// per primary term or synonym, and is maintained out-of-band.
type PGSearcher struct {
	pool *pgxpool.Pool
}

func NewPGSearcher(pool *pgxpool.Pool) *PGSearcher {
	return &PGSearcher{pool: pool}
}

func (s *PGSearcher) Search(ctx context.Context, term string, k int) ([]Candidate, error) {
	if k <= 0 {
		k = 3
	}
	rows, err := s.pool.Query(ctx,
		`SELECT system, code, display, similarity(term, $1) AS score
		 FROM vocab_concepts
		 WHERE term % $1
		 ORDER BY score DESC
		 LIMIT $2`, term, k)
	if err != nil {
		return nil, fmt.Errorf("semantic search query: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.System, &c.Code, &c.Display, &c.Score); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
