package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// liveStartIndex keeps two live appointments of one barber from sharing a
// start time. Cancelled rows are outside the index, so a cancelled slot can be
// booked again.
const liveStartIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointment_live_start
	ON appointments (barber_id, date, start_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !cfg.IsProduction() && cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate brings the schema up to date. Shops without a timezone get the
// configured one.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Barber{},
		&models.BarberProduct{},
		&models.Client{},
		&models.Appointment{},
		&models.DayOverride{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(liveStartIndex).Error; err != nil {
		return fmt.Errorf("create live start index: %w", err)
	}

	if err := db.Exec(`
        UPDATE barbershops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.ShopTimezone).Error; err != nil {
		return fmt.Errorf("backfill timezone: %w", err)
	}

	return nil
}

// Ping checks the pool with the caller's deadline.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
