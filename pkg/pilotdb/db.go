package pilotdb

import (
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite = "sqlite"
	DriverMySQL  = "mysql"

	SqliteInMemoryDSN = "file::memory:?cache=shared"
)

func MakeMySQLDSNFromEnv() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"))
}

// Open connects to the database. For mysql an empty dsn is built from the
// DB_* environment variables.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch driver {
	case DriverSqlite:
		db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
		if err != nil {
			return nil, err
		}

		// Set the sqlite db to 1 connection. This gets around table lock issues from
		// multiple threads.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		return db, nil
	case DriverMySQL:
		if dsn == "" {
			dsn = MakeMySQLDSNFromEnv()
		}
		return gorm.Open(mysql.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unknown database driver '%s'", driver)
	}
}

const maxDBRetries = 5

// MustConnectToDB will attempt to connect to the database maxDBRetries times and run the
// migrations. If it isn't successful after that number of retries then it will call
// log.Fatalf(), which will cause the server to exit. Between retry attempts it will
// sleep for 3 seconds.
func MustConnectToDB(driver, dsn string) *gorm.DB {
	var (
		err error
		db  *gorm.DB
	)

	retryCount := 1
	for {
		db, err = Open(driver, dsn)
		switch {
		case err == nil:
			if err := RunMigrations(db); err != nil {
				log.Fatalf("Migrations failed: %s", err)
			}
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open %s db: %s", driver, err)
		default:
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&model.APIKey{}, &model.Pilot{}, &model.Implant{})
}
