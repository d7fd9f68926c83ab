// Package services содержит построение xlsx-выгрузок результатов скрейпинга.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mrxception/ofmreddit/internal/models"
)

// timeLayout формат дат в выгрузке.
const timeLayout = "2006-01-02 15:04 UTC"

// sheetName имя листа выгрузки.
const sheetName = "Sheet1"

// ScrapeRepository определяет методы хранилища результатов скрейпинга.
type ScrapeRepository interface {
	ListScrapeResults(ctx context.Context, subreddit string, limit int) ([]*models.ScrapeResult, error)
}

// ExportService строит xlsx-файлы из результатов скрейпинга.
type ExportService struct {
	repo    ScrapeRepository
	maxRows int
	log     *slog.Logger
}

// NewExportService создает новый экземпляр ExportService.
func NewExportService(repo ScrapeRepository, maxRows int, log *slog.Logger) *ExportService {
	if maxRows <= 0 {
		maxRows = 10000
	}
	return &ExportService{
		repo:    repo,
		maxRows: maxRows,
		log:     log,
	}
}

// Export строит xlsx для запрошенного вида выгрузки и возвращает его байты.
// kind "data" — сводные колонки, "raw" — все колонки вместе с исходным JSON.
func (s *ExportService) Export(ctx context.Context, req models.DummyExport) ([]byte, error) {
	limit := s.maxRows
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}
	results, err := s.repo.ListScrapeResults(ctx, req.Subreddit, limit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	var headers []string
	switch req.Kind {
	case "raw":
		headers = []string{"ID", "Subreddit", "Title", "Author", "Score", "Comments", "URL", "Posted At", "Raw"}
	default:
		headers = []string{"Subreddit", "Title", "Author", "Score", "Comments", "URL", "Posted At"}
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	for rowIdx, r := range results {
		var values []any
		postedAt := formatTime(r.PostedAt)
		if req.Kind == "raw" {
			values = []any{r.ID, r.Subreddit, r.Title, r.Author, r.Score, r.Comments, r.URL, postedAt, string(r.Raw)}
		} else {
			values = []any{r.Subreddit, r.Title, r.Author, r.Score, r.Comments, r.URL, postedAt}
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	s.log.Info("export built", slog.String("kind", req.Kind), slog.Int("rows", len(results)))
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
