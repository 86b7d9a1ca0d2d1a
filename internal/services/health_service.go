package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	startTime time.Time
	explorer  *ExplorerService
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Dataset   map[string]interface{} `json:"dataset,omitempty"`
}

// VersionInfo represents version metadata
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, explorer *ExplorerService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		explorer:  explorer,
		logger:    logger,
	}
}

// HealthCheck reports process health plus dataset availability.
func (s *HealthService) HealthCheck(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}

	if s.explorer != nil {
		if result, err := s.explorer.Cleaned(ctx); err != nil {
			status.Status = "degraded"
			status.Dataset = map[string]interface{}{
				"loaded": false,
				"error":  err.Error(),
			}
		} else {
			status.Dataset = map[string]interface{}{
				"loaded":  true,
				"rows":    result.RowsAfter,
				"dropped": result.Dropped,
			}
		}
	}

	return status
}

// Version returns version metadata.
func (s *HealthService) Version() *VersionInfo {
	return &VersionInfo{
		Version:   s.version,
		GoVersion: runtime.Version(),
	}
}
