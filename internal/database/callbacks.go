package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// registerFunc matches the signature of gorm's callback Register method
type registerFunc func(name string, fn func(*gorm.DB)) error

// RegisterMetricsCallbacks registers GORM callbacks that time every query,
// create, update and delete and report them to the recorder.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	instrument := func(operation string, before, after registerFunc) {
		_ = before("metrics:"+operation+"_before", func(db *gorm.DB) {
			db.InstanceSet("query_start_time", time.Now())
		})
		_ = after("metrics:"+operation+"_after", func(db *gorm.DB) {
			if startTime, ok := db.InstanceGet("query_start_time"); ok {
				duration := time.Since(startTime.(time.Time))
				table := db.Statement.Table
				if table == "" {
					table = "unknown"
				}
				recorder.RecordDBQuery(operation, table, duration, db.Error)
			}
		})
	}

	instrument("select",
		db.Callback().Query().Before("gorm:query").Register,
		db.Callback().Query().After("gorm:query").Register)
	instrument("insert",
		db.Callback().Create().Before("gorm:create").Register,
		db.Callback().Create().After("gorm:create").Register)
	instrument("update",
		db.Callback().Update().Before("gorm:update").Register,
		db.Callback().Update().After("gorm:update").Register)
	instrument("delete",
		db.Callback().Delete().Before("gorm:delete").Register,
		db.Callback().Delete().After("gorm:delete").Register)
}

// StartDBStatsCollector starts periodic connection pool stats collection.
// Closing the returned channel stops the collector.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
