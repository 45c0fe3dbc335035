package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER (mysql for deployments,
// sqlite as the local default). FK constraints are not created by the
// migrator: orders and reservations hold non-owning references, so deleting
// a referenced table or menu item must not cascade or be blocked.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	switch driver {
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
		return gorm.Open(mysql.Open(dsn), cfg)
	case "sqlite", "":
		if dsn == "" {
			dsn = "restaurant.db"
		}
		return gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
