package worker

import (
	"context"
	"time"

	"github.com/dentix/clinic-api/internal/email"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/pkg/logger"
	"github.com/dentix/clinic-api/pkg/metrics"
)

type LowStockCheckerConfig struct {
	Interval  time.Duration
	AlertTo   string
	SendEmail bool
}

// LowStockChecker periodically scans every clinic's inventory and alerts on
// items at or below their minimum stock.
type LowStockChecker struct {
	inventory repository.InventoryRepository
	clinics   repository.ClinicRepository
	sender    email.Sender
	config    LowStockCheckerConfig
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewLowStockChecker(
	inventory repository.InventoryRepository,
	clinics repository.ClinicRepository,
	sender email.Sender,
	config LowStockCheckerConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *LowStockChecker {
	if config.Interval <= 0 {
		panic("Interval must be greater than 0")
	}

	return &LowStockChecker{
		inventory: inventory,
		clinics:   clinics,
		sender:    sender,
		config:    config,
		logger:    logger,
		metrics:   metrics,
	}
}

func (c *LowStockChecker) Start(ctx context.Context) {
	ticker := time.NewTicker(c.config.Interval)
	defer ticker.Stop()

	c.logger.Info("Starting low stock checker")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Shutting down low stock checker")
			return
		case <-ticker.C:
			c.check(ctx)
		}
	}
}

func (c *LowStockChecker) check(ctx context.Context) {
	clinics, err := c.clinics.List(ctx)
	if err != nil {
		c.logger.Error(err, "Failed to list clinics")
		return
	}

	total := 0
	for _, clinic := range clinics {
		items, err := c.inventory.ListLowStock(ctx, clinic.ID)
		if err != nil {
			c.logger.Error(err, "Failed to list low stock items", "clinic_id", clinic.ID.String())
			continue
		}
		total += len(items)

		if !c.config.SendEmail || c.config.AlertTo == "" {
			continue
		}
		for _, item := range items {
			if err := c.sender.SendLowStockAlert(c.config.AlertTo, item); err != nil {
				c.logger.Error(err, "Failed to send low stock alert",
					"item_id", item.ID.String(),
					"clinic_id", clinic.ID.String())
			}
		}
	}

	c.metrics.LowStockItems.Set(float64(total))
}
