package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/engine"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

// HealthCheckFunc verifies that the storage backend is reachable.
type HealthCheckFunc func(ctx context.Context) error

// SystemInfo describes the running deployment.
type SystemInfo struct {
	DbDriver  string
	DbVersion int64
	Features  map[string]bool
}

// SystemService handles system-related operations.
type SystemService struct {
	healthCheck HealthCheckFunc
	info        SystemInfo
	selfCheck   func() model.SelfCheckResult
}

// NewSystemService creates a new SystemService.
func NewSystemService(healthCheck HealthCheckFunc, info SystemInfo) *SystemService {
	return &SystemService{
		healthCheck: healthCheck,
		info:        info,
		// The golden ledger is constant, so its outcome is computed once.
		selfCheck: sync.OnceValue(engine.RunSelfCheck),
	}
}

// CheckHealth checks the health of the storage backend.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return s.healthCheck(ctx)
}

// SelfCheck returns the outcome of replaying the golden ledger.
func (s *SystemService) SelfCheck() model.SelfCheckResult {
	return s.selfCheck()
}

// CheckVersion reports application and schema versions plus enabled features.
func (s *SystemService) CheckVersion() model.VersionInfo {
	features := make(map[string]bool, len(s.info.Features))
	for k, v := range s.info.Features {
		features[k] = v
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(s.info.DbVersion, 10),
		DbDriver:   s.info.DbDriver,
		Features:   features,
	}
}
