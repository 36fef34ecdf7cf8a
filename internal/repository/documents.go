package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mbzesq/npl-vision-2/internal/entity"
)

// DocumentRepository persists normalized document records.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *entity.Document) error
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.Document, error)
}

type documentRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentRepository(db *DB, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepository{db: db, logger: logger}
}

const documentColumns = `id, loan_id, document_type, recording_date, instrument_number,
	original_lender, assignor, assignee, confidence_score, created_at`

func (r *documentRepository) CreateDocument(ctx context.Context, doc *entity.Document) error {
	doc.CreatedAt = time.Now().UTC()

	var loanID any
	if doc.LoanID != nil {
		loanID = doc.LoanID.String()
	}

	query := `INSERT INTO documents (` + documentColumns + `) VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.SQL.ExecContext(ctx, r.db.bind(query),
		doc.ID.String(),
		loanID,
		doc.DocumentType,
		doc.RecordingDate,
		doc.InstrumentNumber,
		doc.OriginalLender,
		doc.Assignor,
		doc.Assignee,
		doc.ConfidenceScore,
		doc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create document", "document_id", doc.ID, "error", err)
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE loan_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.SQL.QueryContext(ctx, r.db.bind(query), loanID.String())
	if err != nil {
		r.logger.Error("failed to list documents", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var (
			idStr         string
			loanIDStr     sql.NullString
			docType       sql.NullString
			recordingDate sql.NullTime
			instrument    sql.NullString
			lender        sql.NullString
			assignor      sql.NullString
			assignee      sql.NullString
			confidence    float64
			createdAt     time.Time
		)
		if err := rows.Scan(
			&idStr, &loanIDStr, &docType, &recordingDate, &instrument,
			&lender, &assignor, &assignee, &confidence, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse document id: %w", err)
		}
		doc := &entity.Document{
			ID:               id,
			DocumentType:     strPtr(docType),
			RecordingDate:    timePtr(recordingDate),
			InstrumentNumber: strPtr(instrument),
			OriginalLender:   strPtr(lender),
			Assignor:         strPtr(assignor),
			Assignee:         strPtr(assignee),
			ConfidenceScore:  confidence,
			CreatedAt:        createdAt,
		}
		if loanIDStr.Valid {
			if lid, err := uuid.Parse(loanIDStr.String); err == nil {
				doc.LoanID = &lid
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
