package api

import (
	"context"
	"net/http"
	"time"

	"aerosense/estimator/internal/common"
	"aerosense/estimator/internal/models/dtos"
)

const healthPingTimeout = 2 * time.Second

// Pinger is any backing service the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck. Only configured backends are
// listed; the service is healthy without any of them.
func HealthCheckHandler(checks map[string]Pinger, airportCount int, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		services := make(map[string]dtos.ServiceStatus, len(checks))
		overallStatus := "ok"
		for name, p := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			err := p.Ping(ctx)
			cancel()

			status := dtos.ServiceStatus{Status: "ok", Details: "connected"}
			if err != nil {
				status = dtos.ServiceStatus{Status: "down", Details: err.Error()}
				overallStatus = "down"
			}
			services[name] = status
		}

		resp := dtos.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Airports: airportCount,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, "Health check", resp, code)
	}
}
