package metrics

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
)

// BusinessMetricsCollector periodically refreshes the todo and attachment
// count gauges from the database.
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	var todos int64
	if err := c.db.Model(&domain.Todo{}).Count(&todos).Error; err != nil {
		c.logger.Warn("Failed to count todos for metrics", zap.Error(err))
	} else {
		c.metrics.SetTodosTotal(todos)
	}

	var attachments int64
	if err := c.db.Model(&domain.TodoAttachment{}).Count(&attachments).Error; err != nil {
		c.logger.Warn("Failed to count attachments for metrics", zap.Error(err))
	} else {
		c.metrics.SetAttachmentsTotal(attachments)
	}
}
