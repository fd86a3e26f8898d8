package sqlite

import (
	"time"

	"byteapi/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens (creating if needed) the database file at path and migrates
// every entity table.
func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err = migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func migrate(db *gorm.DB) error {
	models := entity.Models()
	dst := make([]any, 0, len(models))
	for _, m := range models {
		dst = append(dst, m)
	}
	return db.AutoMigrate(dst...)
}
