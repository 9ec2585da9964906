package model

import "time"

// BackupVersion is the current version of the export bundle layout.
const BackupVersion = 1

// Backup is the full export of the ledger.
type Backup struct {
	Version      int           `json:"version"`
	Timestamp    time.Time     `json:"timestamp"`
	Assets       []Asset       `json:"assets"`
	Transactions []Transaction `json:"transactions"`
}

// ImportResult reports what an import replaced.
type ImportResult struct {
	Assets       int `json:"assets"`
	Transactions int `json:"transactions"`
}
