package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// GetPrompt возвращает промпт по ключу вместе с прикреплёнными документами.
func (s *Storage) GetPrompt(ctx context.Context, key string) (*models.Prompt, error) {
	const op = "storage.GetPrompt"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var p models.Prompt
	row := s.DB.QueryRowContext(ctx,
		`SELECT key, content, updated_at FROM prompts WHERE key = $1`, key)
	if err := row.Scan(&p.Key, &p.Content, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, prompt_key, name, url FROM prompt_documents WHERE prompt_key = $1 ORDER BY id`, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var d models.PromptDocument
		if err := rows.Scan(&d.ID, &d.PromptKey, &d.Name, &d.URL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Documents = append(p.Documents, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// UpsertPrompt сохраняет текст промпта и полностью заменяет набор
// прикреплённых документов в одной транзакции.
func (s *Storage) UpsertPrompt(ctx context.Context, key, content string, docs []models.PromptDocument) error {
	const op = "storage.UpsertPrompt"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO prompts (key, content, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key)
		 DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		key, content)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM prompt_documents WHERE prompt_key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, d := range docs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO prompt_documents (prompt_key, name, url) VALUES ($1, $2, $3)`,
			key, d.Name, d.URL); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
