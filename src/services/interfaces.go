package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

var (
	ErrInvalidRequest = errors.New("invalid import request")
	ErrParsingFailed  = errors.New("failed to parse file")
	ErrNoTrades       = errors.New("file contains no valid trades")
	ErrStorageFailed  = errors.New("failed to store trades")
)

// ImportRequest is one uploaded export. Mapping and DateOrder only apply to the generic source.
type ImportRequest struct {
	UserID    string
	AccountID string
	Source    string
	FileName  string
	File      io.Reader
	Mapping   map[string]string
	DateOrder string
}

// ImportResult reports what one file produced. Skipped counts data rows that yielded no trade.
type ImportResult struct {
	FileName    string               `json:"file_name,omitempty"`
	Source      string               `json:"source"`
	Rows        int                  `json:"rows"`
	Added       int                  `json:"added"`
	Duplicates  int                  `json:"duplicates"`
	Skipped     int                  `json:"skipped"`
	SkippedRows []mapping.SkippedRow `json:"skipped_rows"`
	Trades      []models.Trade       `json:"trades"`
}

// ImportService defines the trade import and journal analytics operations.
type ImportService interface {
	ImportFile(ctx context.Context, req ImportRequest) (*ImportResult, error)
	PreviewFile(ctx context.Context, req ImportRequest) (*ImportResult, error)
	ImportBatch(ctx context.Context, reqs []ImportRequest) ([]*ImportResult, error)
	GetTrades(ctx context.Context, userID, account string) ([]models.Trade, error)
	DeleteAllTrades(ctx context.Context, userID string) (int64, error)
	GetStats(ctx context.Context, userID, account string) (models.TradeStats, error)
	GetDrawdown(ctx context.Context, userID, account string, cfg models.DrawdownConfig) (models.DrawdownReport, error)
	Sources() []parsers.SourceInfo
	InvalidateUserCache(userID string)
}
