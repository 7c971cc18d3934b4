package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reloadTimeout = 30 * time.Second

// Reloader is implemented by InventoryService.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CatalogRefresher reloads the inventory on a cron schedule.
type CatalogRefresher struct {
	cron     *cron.Cron
	reloader Reloader
	log      logrus.FieldLogger
}

// NewCatalogRefresher parses schedule (standard cron syntax or
// descriptors such as "@every 10m").
func NewCatalogRefresher(schedule string, reloader Reloader, log logrus.FieldLogger) (*CatalogRefresher, error) {
	r := &CatalogRefresher{
		cron:     cron.New(),
		reloader: reloader,
		log:      log,
	}
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *CatalogRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if err := r.reloader.Reload(ctx); err != nil {
		r.log.WithError(err).Error("Scheduled inventory reload failed")
	}
}

func (r *CatalogRefresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running reload to finish or
// ctx to expire.
func (r *CatalogRefresher) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
