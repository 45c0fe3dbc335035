package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitDB stores the process-wide database handle. Controllers receive
// their handle via constructor injection; this singleton exists for code
// that runs outside a request, e.g. migrations and startup checks.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

func GetDB() *gorm.DB {
	return db
}
