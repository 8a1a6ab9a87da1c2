package dbkeeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/models"
	"github.com/drstein77/quotedesk/internal/storage"
)

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

type DBKeeper struct {
	pool *pgxpool.Pool
	log  Log
}

// NewDBKeeper connects to the database and brings the schema up to date.
// It returns nil when the DSN is empty or the database cannot be reached.
func NewDBKeeper(ctx context.Context, dsn func() string, migrationsDir func() string, log Log) *DBKeeper {
	addr := dsn()
	if addr == "" {
		log.Error("database dsn is empty")
		return nil
	}

	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		log.Error("Unable to parse database DSN: ", zap.Error(err))
		return nil
	}

	if err := migrateUp(config.ConnConfig, migrationsDir(), log); err != nil {
		log.Error("Error while performing migration: ", zap.Error(err))
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Error("Unable to connect to database: ", zap.Error(err))
		return nil
	}

	log.Info("Connected!")

	return &DBKeeper{
		pool: pool,
		log:  log,
	}
}

// SaveQuote stores the request, its lines and its attachments in one
// transaction.
func (kp *DBKeeper) SaveQuote(ctx context.Context, q models.QuoteRequest) (err error) {
	if kp.pool == nil {
		return fmt.Errorf("database connection pool is nil")
	}

	tx, err := kp.pool.Begin(ctx)
	if err != nil {
		kp.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				kp.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
			}
		}
	}()

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO quote_requests (id, name, email, phone, company, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.Contact.Name, q.Contact.Email, q.Contact.Phone, q.Contact.Company, q.Contact.Message, q.CreatedAt)

	for i, line := range q.Lines {
		batch.Queue(`
			INSERT INTO quote_items (quote_id, position, product_id, name, slug, category_name, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			q.ID, i, line.ProductID, line.Name, line.Slug, line.CategoryName, line.Quantity, line.Image)
	}

	for i, a := range q.Attachments {
		batch.Queue(`
			INSERT INTO quote_attachments (quote_id, position, filename, content_type, size, data)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, i, a.Filename, a.ContentType, a.Size, a.Data)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, execErr := br.Exec(); execErr != nil {
			br.Close()
			err = fmt.Errorf("failed to execute batch query: %w", execErr)
			return err
		}
	}
	if closeErr := br.Close(); closeErr != nil {
		err = fmt.Errorf("failed to close batch results: %w", closeErr)
		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		return err
	}

	kp.log.Info("Quote request stored",
		zap.String("quote_id", q.ID),
		zap.Int("lines", len(q.Lines)),
		zap.Int("attachments", len(q.Attachments)))
	return nil
}

// GetQuote loads a quote request with its lines and attachments.
func (kp *DBKeeper) GetQuote(ctx context.Context, id string) (*models.QuoteRequest, error) {
	if kp.pool == nil {
		return nil, fmt.Errorf("database connection pool is nil")
	}

	q := models.QuoteRequest{ID: id}
	err := kp.pool.QueryRow(ctx, `
		SELECT name, email, phone, company, message, created_at
		FROM quote_requests
		WHERE id = $1`, id).Scan(
		&q.Contact.Name,
		&q.Contact.Email,
		&q.Contact.Phone,
		&q.Contact.Company,
		&q.Contact.Message,
		&q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		kp.log.Error("Failed to query quote request", zap.Error(err))
		return nil, fmt.Errorf("failed to query quote request: %w", err)
	}

	if q.Lines, err = kp.quoteLines(ctx, id); err != nil {
		return nil, err
	}
	if q.Attachments, err = kp.quoteAttachments(ctx, id); err != nil {
		return nil, err
	}
	return &q, nil
}

func (kp *DBKeeper) quoteLines(ctx context.Context, id string) ([]models.BasketLine, error) {
	rows, err := kp.pool.Query(ctx, `
		SELECT product_id, name, slug, category_name, quantity, image
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer rows.Close()

	var lines []models.BasketLine
	for rows.Next() {
		var l models.BasketLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Slug, &l.CategoryName, &l.Quantity, &l.Image); err != nil {
			kp.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		lines = append(lines, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", rows.Err())
	}
	return lines, nil
}

func (kp *DBKeeper) quoteAttachments(ctx context.Context, id string) ([]models.Attachment, error) {
	rows, err := kp.pool.Query(ctx, `
		SELECT filename, content_type, size, data
		FROM quote_attachments
		WHERE quote_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote attachments: %w", err)
	}
	defer rows.Close()

	var files []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.Filename, &a.ContentType, &a.Size, &a.Data); err != nil {
			kp.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		files = append(files, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", rows.Err())
	}
	return files, nil
}

func (kp *DBKeeper) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kp.pool.Ping(ctx); err != nil {
		kp.log.Error("Database ping failed", zap.Error(err))
		return false
	}

	return true
}

func (kp *DBKeeper) Close() bool {
	if kp.pool != nil {
		kp.pool.Close()
		kp.log.Info("Database connection pool closed")
		return true
	}
	kp.log.Info("Attempted to close a nil database connection pool")
	return false
}
