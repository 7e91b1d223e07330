package storage

import (
	"github.com/haedavja/hahahahgo/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema updated via
// AutoMigrate. Battle state is a JSON column, so schema churn stays confined
// to the envelope fields.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Battle{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
