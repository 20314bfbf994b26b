package controllers

import (
	"context"
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

// Pinger is the reachability probe a datasource exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness probes.
type HealthController struct {
	db    Pinger
	redis Pinger
	logg  *logger.Logger
}

// NewHealthController wires the probes. redis may be nil when the deployment
// runs without it.
func NewHealthController(db Pinger, redis Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{db: db, redis: redis, logg: logg}
}

// Live reports process liveness.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready verifies the datasources are reachable.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		responses.WriteError(w, r, c.logg,
			errors.Wrap(errors.CodeDependency, err, "database unreachable"))
		return
	}
	if c.redis != nil {
		if err := c.redis.Ping(r.Context()); err != nil {
			responses.WriteError(w, r, c.logg,
				errors.Wrap(errors.CodeDependency, err, "redis unreachable"))
			return
		}
	}
	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
