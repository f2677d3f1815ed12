// backend/src/services/import_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers"
	"github.com/username/tradejournal/backend/src/parsers/generic"
	"github.com/username/tradejournal/backend/src/processors"
)

const (
	ckUserTrades = "res_trades_user_%s"
	ckUserStats  = "agg_stats_user_%s_account_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute

	// fixed width so that close_date sorts chronologically as text
	dbTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

type importServiceImpl struct {
	db                *sql.DB
	registry          *parsers.Registry
	tradeProcessor    *processors.TradeProcessor
	statsProcessor    processors.StatsProcessor
	drawdownProcessor processors.DrawdownProcessor
	reportCache       *cache.Cache
	cacheTTL          time.Duration
}

func NewImportService(
	db *sql.DB,
	registry *parsers.Registry,
	tradeProcessor *processors.TradeProcessor,
	statsProcessor processors.StatsProcessor,
	drawdownProcessor processors.DrawdownProcessor,
	reportCache *cache.Cache,
	cacheTTL time.Duration,
) ImportService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheExpiration
	}
	return &importServiceImpl{
		db:                db,
		registry:          registry,
		tradeProcessor:    tradeProcessor,
		statsProcessor:    statsProcessor,
		drawdownProcessor: drawdownProcessor,
		reportCache:       reportCache,
		cacheTTL:          cacheTTL,
	}
}

func (s *importServiceImpl) Sources() []parsers.SourceInfo {
	return s.registry.Sources()
}

func (s *importServiceImpl) ImportFile(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	start := time.Now()
	logger.FromContext(ctx).Info("ImportFile START", "userID", req.UserID, "source", req.Source, "file", req.FileName)

	result, err := s.parse(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, req.UserID, result); err != nil {
		return nil, err
	}
	s.InvalidateUserCache(req.UserID)

	logger.FromContext(ctx).Info("ImportFile END", "userID", req.UserID, "added", result.Added, "duplicates", result.Duplicates, "skipped", result.Skipped, "duration", time.Since(start))
	return result, nil
}

// PreviewFile maps a file exactly like ImportFile but writes nothing.
func (s *importServiceImpl) PreviewFile(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	return s.parse(ctx, req)
}

// ImportBatch maps every file concurrently and only writes once all of them mapped cleanly.
func (s *importServiceImpl) ImportBatch(ctx context.Context, reqs []ImportRequest) ([]*ImportResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no files", ErrInvalidRequest)
	}

	results := make([]*ImportResult, len(reqs))
	group, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		group.Go(func() error {
			res, err := s.parse(gctx, req)
			if err != nil {
				if req.FileName != "" {
					return fmt.Errorf("%s: %w", req.FileName, err)
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// one transaction for the whole batch: a storage failure on any file leaves nothing written
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error beginning database transaction: %w", ErrStorageFailed, err)
	}
	defer dbTx.Rollback()

	touched := make(map[string]bool)
	for i, res := range results {
		if err := insertTrades(ctx, dbTx, reqs[i].UserID, res); err != nil {
			if reqs[i].FileName != "" {
				return nil, fmt.Errorf("%s: %w", reqs[i].FileName, err)
			}
			return nil, err
		}
		touched[reqs[i].UserID] = true
	}
	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: error committing trades: %w", ErrStorageFailed, err)
	}

	for userID := range touched {
		s.InvalidateUserCache(userID)
	}
	return results, nil
}

func (s *importServiceImpl) parse(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if req.File == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidRequest)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser, err := s.parserFor(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}

	table, err := parsers.ReadTable(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}

	mapped, err := parser.Parse(table, req.AccountID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}
	for _, sk := range mapped.Skipped {
		logger.FromContext(ctx).Debug("Skipping row", "userID", req.UserID, "file", req.FileName, "row", sk.Row, "reason", sk.Reason)
	}
	if len(mapped.Trades) == 0 {
		return nil, fmt.Errorf("%w: %d rows read, none usable", ErrNoTrades, len(table.Rows))
	}

	return &ImportResult{
		FileName:    req.FileName,
		Source:      parser.Profile().Source,
		Rows:        len(table.Rows),
		Skipped:     len(table.Rows) - len(mapped.Trades),
		SkippedRows: mapped.Skipped,
		Trades:      s.tradeProcessor.Process(mapped.Trades),
	}, nil
}

func (s *importServiceImpl) parserFor(req ImportRequest) (parsers.Parser, error) {
	if strings.EqualFold(strings.TrimSpace(req.Source), generic.Source) {
		return s.registry.GenericParser(req.Mapping, req.DateOrder)
	}
	return s.registry.GetParser(req.Source)
}

// persist inserts one file's trades in one transaction.
func (s *importServiceImpl) persist(ctx context.Context, userID string, result *ImportResult) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: error beginning database transaction: %w", ErrStorageFailed, err)
	}
	defer dbTx.Rollback()

	if err := insertTrades(ctx, dbTx, userID, result); err != nil {
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("%w: error committing trades: %w", ErrStorageFailed, err)
	}
	return nil
}

// insertTrades runs inside the caller's transaction. Rows hitting UNIQUE(user_id, hash_id)
// count as duplicates instead of failing the insert.
func insertTrades(ctx context.Context, dbTx *sql.Tx, userID string, result *ImportResult) error {
	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO trades (id, user_id, account_number, instrument, side, quantity, entry_price, close_price, entry_date, close_date, pnl, commission, stop_loss, take_profit, close_reason, time_in_position, source, vendor_trade_id, hash_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: error preparing insert statement: %w", ErrStorageFailed, err)
	}
	defer stmt.Close()

	result.Added, result.Duplicates = 0, 0
	for _, t := range result.Trades {
		_, err := stmt.ExecContext(ctx, t.ID, userID, t.AccountNumber, t.Instrument, string(t.Side), t.Quantity, t.EntryPrice, t.ClosePrice,
			t.EntryDate.UTC().Format(dbTimeLayout), t.CloseDate.UTC().Format(dbTimeLayout), t.PnL, t.Commission,
			nullFloat(t.StopLoss), nullFloat(t.TakeProfit), t.CloseReason, t.TimeInPosition, t.Source, t.VendorTradeID, t.HashID)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				logger.FromContext(ctx).Debug("Skipping duplicate trade on import", "userID", userID, "hash_id", t.HashID)
				result.Duplicates++
				continue
			}
			return fmt.Errorf("%w: error inserting trade (instrument %s, closed %s): %w", ErrStorageFailed, t.Instrument, t.CloseDate.Format(time.RFC3339), err)
		}
		result.Added++
	}
	return nil
}

// InvalidateUserCache clears the cached trades and every cached stats entry for a user.
func (s *importServiceImpl) InvalidateUserCache(userID string) {
	s.reportCache.Delete(fmt.Sprintf(ckUserTrades, userID))
	prefix := fmt.Sprintf(ckUserStats, userID, "")
	for key := range s.reportCache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.reportCache.Delete(key)
		}
	}
	logger.L.Info("Invalidated all caches for user", "userID", userID)
}

func (s *importServiceImpl) GetTrades(ctx context.Context, userID, account string) ([]models.Trade, error) {
	all, err := s.userTrades(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == "" {
		return all, nil
	}
	filtered := make([]models.Trade, 0, len(all))
	for _, t := range all {
		if t.AccountNumber == account {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *importServiceImpl) DeleteAllTrades(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: error deleting trades for user %s: %w", ErrStorageFailed, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	s.InvalidateUserCache(userID)
	logger.FromContext(ctx).Info("Deleted all trades", "userID", userID, "count", n)
	return n, nil
}

func (s *importServiceImpl) GetStats(ctx context.Context, userID, account string) (models.TradeStats, error) {
	cacheKey := fmt.Sprintf(ckUserStats, userID, account)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.FromContext(ctx).Debug("Cache hit for GetStats", "userID", userID, "account", account)
		return cached.(models.TradeStats), nil
	}

	trades, err := s.GetTrades(ctx, userID, account)
	if err != nil {
		return models.TradeStats{}, err
	}
	stats := s.statsProcessor.Calculate(trades)
	s.reportCache.Set(cacheKey, stats, s.cacheTTL)
	return stats, nil
}

func (s *importServiceImpl) GetDrawdown(ctx context.Context, userID, account string, cfg models.DrawdownConfig) (models.DrawdownReport, error) {
	if cfg.AccountSize <= 0 || cfg.DailyLossPercent <= 0 || cfg.MaxDrawdownPercent <= 0 {
		return models.DrawdownReport{}, fmt.Errorf("%w: account size and loss percentages must be positive", ErrInvalidRequest)
	}
	trades, err := s.GetTrades(ctx, userID, account)
	if err != nil {
		return models.DrawdownReport{}, err
	}
	return s.drawdownProcessor.Evaluate(trades, cfg), nil
}

// userTrades loads a user's trades ordered by close time, through the cache.
func (s *importServiceImpl) userTrades(ctx context.Context, userID string) ([]models.Trade, error) {
	cacheKey := fmt.Sprintf(ckUserTrades, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.Trade), nil
	}

	trades, err := fetchUserTrades(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, trades, s.cacheTTL)
	return trades, nil
}

func fetchUserTrades(ctx context.Context, db *sql.DB, userID string) ([]models.Trade, error) {
	logger.FromContext(ctx).Debug("Fetching trades from DB", "userID", userID)
	rows, err := db.QueryContext(ctx, `SELECT id, user_id, account_number, instrument, side, quantity, entry_price, close_price, entry_date, close_date, pnl, commission, stop_loss, take_profit, close_reason, time_in_position, source, vendor_trade_id, hash_id FROM trades WHERE user_id = ? ORDER BY close_date ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying trades for user %s: %w", ErrStorageFailed, userID, err)
	}
	defer rows.Close()

	trades := []models.Trade{}
	for rows.Next() {
		var (
			t                    models.Trade
			side                 string
			entryDate, closeDate string
			stopLoss, takeProfit sql.NullFloat64
			account, reason      sql.NullString
			vendorID             sql.NullString
		)
		scanErr := rows.Scan(&t.ID, &t.UserID, &account, &t.Instrument, &side, &t.Quantity, &t.EntryPrice, &t.ClosePrice, &entryDate, &closeDate, &t.PnL, &t.Commission, &stopLoss, &takeProfit, &reason, &t.TimeInPosition, &t.Source, &vendorID, &t.HashID)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: error scanning trade row for user %s: %w", ErrStorageFailed, userID, scanErr)
		}
		t.Side = models.Side(side)
		t.AccountNumber = account.String
		t.CloseReason = reason.String
		t.VendorTradeID = vendorID.String
		t.StopLoss = floatPtr(stopLoss)
		t.TakeProfit = floatPtr(takeProfit)
		if t.EntryDate, err = time.Parse(dbTimeLayout, entryDate); err != nil {
			return nil, fmt.Errorf("%w: bad entry_date %q for trade %s: %w", ErrStorageFailed, entryDate, t.ID, err)
		}
		if t.CloseDate, err = time.Parse(dbTimeLayout, closeDate); err != nil {
			return nil, fmt.Errorf("%w: bad close_date %q for trade %s: %w", ErrStorageFailed, closeDate, t.ID, err)
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating over trade rows for user %s: %w", ErrStorageFailed, userID, err)
	}
	logger.FromContext(ctx).Info("DB fetch complete.", "userID", userID, "tradeCount", len(trades))
	return trades, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}
