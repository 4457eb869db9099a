package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/config"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`)
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	if err := db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Service{},
		&models.Professional{},
		&models.ProfessionalService{},
		&models.BusinessHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE businesses
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Garantia no banco contra double-booking: dois agendamentos ativos do
	// mesmo profissional não podem ter intervalos [start, end) sobrepostos,
	// mesmo sob requisições concorrentes. '[)' = extremos que se tocam passam.
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            professional_id WITH =,
            tsrange(start_time, end_time, '[)') WITH &&
        )
        WHERE (status = 'scheduled')
    `)

	return db
}
