package postgres

import (
	"log"

	"github.com/nusakarsa/refund-service/internal/config"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RefundConfig) *gorm.DB {
	dsn := cfg.RefundDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.OrderLedgerModel{},
		&models.RefundModel{},
		&models.WorkflowStepModel{},
		&models.EscalationCaseModel{},
		&models.ApproverModel{},
		&models.InsuranceFundTxModel{},
	)

	return db
}
