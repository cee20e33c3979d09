package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hjwoodall/prediction-league/internal/domain/submission"
	qb "github.com/hjwoodall/prediction-league/internal/platform/querybuilder"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Get(ctx context.Context, source string) (submission.Record, bool, error) {
	query, args, err := qb.Select("*").From("submissions").
		Where(qb.Eq("source", source)).
		ToSQL()
	if err != nil {
		return submission.Record{}, false, fmt.Errorf("build get submission watermark query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return submission.Record{}, false, nil
		}
		return submission.Record{}, false, fmt.Errorf("get submission watermark: %w", err)
	}

	return submission.Record{
		Source:       row.Source,
		ContentHash:  row.ContentHash,
		LastModified: row.LastModified,
		ProcessedAt:  row.ProcessedAt,
	}, true, nil
}

func (r *SubmissionRepository) Upsert(ctx context.Context, record submission.Record) error {
	insertModel := submissionInsertModel{
		Source:       record.Source,
		ContentHash:  record.ContentHash,
		LastModified: record.LastModified,
		ProcessedAt:  record.ProcessedAt,
	}
	query, args, err := qb.InsertModel("submissions", insertModel, `ON CONFLICT (source)
DO UPDATE SET
    content_hash = EXCLUDED.content_hash,
    last_modified = EXCLUDED.last_modified,
    processed_at = EXCLUDED.processed_at`)
	if err != nil {
		return fmt.Errorf("build upsert submission watermark query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert submission watermark: %w", err)
	}
	return nil
}
