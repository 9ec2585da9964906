package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/backup"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// BackupService exports and imports the whole ledger as a single bundle.
type BackupService struct {
	assets       AssetStore
	transactions TransactionStore
	ledger       LedgerStore
	key          string
	sinks        []backup.Sink
	logger       *slog.Logger
}

// NewBackupService creates a BackupService. A non-empty key encrypts exports
// with fernet; sinks receive scheduled backups.
func NewBackupService(stores Stores, key string, sinks []backup.Sink, logger *slog.Logger) *BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupService{
		assets:       stores.Assets,
		transactions: stores.Transactions,
		ledger:       stores.Ledger,
		key:          key,
		sinks:        sinks,
		logger:       logger,
	}
}

// Encrypted reports whether exports are sealed with a key.
func (s *BackupService) Encrypted() bool {
	return s.key != ""
}

// Snapshot reads every asset and transaction into a bundle.
func (s *BackupService) Snapshot(ctx context.Context) (model.Backup, error) {
	snap, err := dataLoader{assets: s.assets, transactions: s.transactions}.loadSnapshot(ctx, model.TransactionFilter{})
	if err != nil {
		return model.Backup{}, err
	}

	return model.Backup{
		Version:      model.BackupVersion,
		Timestamp:    time.Now().UTC().Truncate(time.Second),
		Assets:       snap.Assets,
		Transactions: snap.Transactions,
	}, nil
}

// Export returns the encoded bundle and the file name it should be saved as.
func (s *BackupService) Export(ctx context.Context) ([]byte, string, error) {
	b, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	data, err := backup.Encode(b, s.key)
	if err != nil {
		return nil, "", err
	}
	return data, backup.FileName(b.Timestamp, s.Encrypted()), nil
}

// Import replaces the entire ledger with the bundle in data. Every record is
// validated first; a *validation.Error lists what is wrong and nothing is
// changed.
func (s *BackupService) Import(ctx context.Context, data []byte) (model.ImportResult, error) {
	b, err := backup.Decode(data, s.key)
	if err != nil {
		return model.ImportResult{}, err
	}

	normalizeBackup(&b)
	if err := validation.ValidateBackup(b); err != nil {
		return model.ImportResult{}, err
	}

	if err := s.ledger.ReplaceAll(ctx, b.Assets, b.Transactions); err != nil {
		return model.ImportResult{}, fmt.Errorf("failed to replace ledger: %w", err)
	}

	s.logger.Info("ledger imported", "assets", len(b.Assets), "transactions", len(b.Transactions))
	return model.ImportResult{
		Assets:       len(b.Assets),
		Transactions: len(b.Transactions),
	}, nil
}

// WriteBackup exports the ledger to every configured sink and returns where
// the copies went.
func (s *BackupService) WriteBackup(ctx context.Context) ([]string, error) {
	if len(s.sinks) == 0 {
		return nil, nil
	}

	data, name, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	locations := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		loc, err := sink.Write(ctx, name, data)
		if err != nil {
			return locations, err
		}
		s.logger.Info("backup written", "location", loc, "bytes", len(data))
		locations = append(locations, loc)
	}
	return locations, nil
}

// normalizeBackup upper-cases enum fields, fills defaults and stamps missing
// creation times, matching what the create endpoints do.
func normalizeBackup(b *model.Backup) {
	now := time.Now().UTC().Truncate(time.Second)

	for i := range b.Assets {
		a := &b.Assets[i]
		a.Symbol = strings.TrimSpace(a.Symbol)
		a.Name = strings.TrimSpace(a.Name)
		a.Type = model.AssetType(strings.ToUpper(string(a.Type)))
		a.Method = model.AccountingMethod(strings.ToUpper(string(a.Method)))
		if a.Method == "" {
			a.Method = model.MethodAverageCost
		}
		a.Currency = strings.ToUpper(a.Currency)
		if a.Currency == "" {
			a.Currency = model.DefaultCurrency
		}
	}

	for i := range b.Transactions {
		t := &b.Transactions[i]
		t.Type = model.TransactionType(strings.ToUpper(string(t.Type)))
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}
}
