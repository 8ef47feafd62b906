package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The service tests migrate these structs into sqlite, so the gorm tags must
// stay free of postgres-only expressions. ID defaults live in the SQL
// migrations; application code assigns uuid.New() before insert.
func TestModelsMigrateIntoSqlite(t *testing.T) {
	t.Parallel()

	dsn := "file:models_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&Warehouse{},
		&User{},
		&Product{},
		&Location{},
		&StockLevel{},
		&Movement{},
		&PutawayTask{},
		&Wave{},
		&Shipment{},
		&ShipmentLine{},
		&ProblemTicket{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	warehouse := Warehouse{ID: uuid.New(), Code: "DC1", Name: "Main"}
	if err := db.Create(&warehouse).Error; err != nil {
		t.Fatalf("insert warehouse: %v", err)
	}
}
