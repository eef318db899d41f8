package db

import (
	"catalog/config"
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens the configured database: MySQL when MYSQL_DSN is set, SQLite otherwise
func Init() {
	var err error
	if config.MYSQL_DSN != "" {
		Instance, err = OpenMySQL(config.MYSQL_DSN)
	} else {
		Instance, err = OpenSQLite(config.SQLITE_FILE)
	}
	if err != nil || Instance == nil {
		panic(err)
	}
}

func gormConfig(prepareStmt bool) *gorm.Config {
	level := logger.Warn
	if !config.DEBUG_MODE {
		level = logger.Error
	}
	return &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            prepareStmt,
		Logger:                 logger.Default.LogMode(level),
	}
}

func OpenMySQL(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), gormConfig(true))
}

// OpenSQLite opens (creating if needed) a SQLite database file.
// The pool is capped at a single connection, so write transactions are serialized.
func OpenSQLite(file string) (*gorm.DB, error) {
	dsn := file
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	instance, err := gorm.Open(sqlite.Open(dsn), gormConfig(false))
	if err != nil {
		return nil, err
	}
	sqlDB, err := instance.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	log.Printf("Using SQLite database: %s", file)
	return instance, nil
}

// IsMySQL is true when row locks (SELECT ... FOR UPDATE) are supported
func IsMySQL(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "mysql"
}
