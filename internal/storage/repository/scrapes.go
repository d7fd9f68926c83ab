package repository

import (
	"context"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// InsertScrapeResult сохраняет строку результата скрейпинга и возвращает её ID.
func (s *Storage) InsertScrapeResult(ctx context.Context, r models.ScrapeResult) (int, error) {
	const op = "storage.InsertScrapeResult"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO scrape_results (subreddit, title, author, score, comments, url, posted_at, raw)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		r.Subreddit, r.Title, r.Author, r.Score, r.Comments, r.URL, r.PostedAt, r.Raw).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListScrapeResults возвращает результаты скрейпинга, опционально
// отфильтрованные по сабреддиту.
func (s *Storage) ListScrapeResults(ctx context.Context, subreddit string, limit int) ([]*models.ScrapeResult, error) {
	const op = "storage.ListScrapeResults"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subreddit, title, author, score, comments, url, posted_at, raw
			  FROM scrape_results
			  WHERE ($1::text = '' OR subreddit = $1)
			  ORDER BY posted_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, subreddit, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ScrapeResult
	for rows.Next() {
		var item models.ScrapeResult
		if err := rows.Scan(&item.ID, &item.Subreddit, &item.Title, &item.Author,
			&item.Score, &item.Comments, &item.URL, &item.PostedAt, &item.Raw); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
