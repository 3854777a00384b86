package health

import (
	"context"
	"net/http"
	"time"

	"github.com/waiyanphyo/shopdesk-backend/api/responses"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthReport struct {
	Status string                 `json:"status"`
	Checks map[string]checkResult `json:"checks"`
}

// Check reports the liveness of the datastore and session cache.
func Check(database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		report := healthReport{
			Status: "ok",
			Checks: map[string]checkResult{},
		}

		probe := func(name string, p pinger) {
			if p == nil {
				report.Checks[name] = checkResult{Status: "skipped"}
				return
			}
			if err := p.Ping(ctx); err != nil {
				report.Status = "degraded"
				report.Checks[name] = checkResult{Status: "down", Error: err.Error()}
				if logg != nil {
					logg.Error(ctx, "health check failed", err)
				}
				return
			}
			report.Checks[name] = checkResult{Status: "ok"}
		}

		probe("database", database)
		probe("redis", cache)

		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, report, "")
	}
}
