package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/thep200/github-harvester/cfg"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Postgres struct {
	Config  *cfg.Config
	once    sync.Once
	db      *gorm.DB
	initErr error
}

func NewPostgres(config *cfg.Config) (*Postgres, error) {
	return &Postgres{
		Config: config,
	}, nil
}

// NewPostgresWithDb tạo wrapper trên một kết nối gorm đã mở sẵn.
// Dùng trong test để thay driver thật bằng sqlite in-memory.
func NewPostgresWithDb(config *cfg.Config, gdb *gorm.DB) (*Postgres, error) {
	p := &Postgres{Config: config, db: gdb}
	p.once.Do(func() {})
	return p, nil
}

func (p *Postgres) DSN() string {
	c := p.Config.Postgres
	sslMode := c.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.Username, c.Password, c.Database, sslMode,
	)
}

func (p *Postgres) Db() (*gorm.DB, error) {
	p.once.Do(func() {
		// Mở kết nối
		var db *gorm.DB
		db, p.initErr = gorm.Open(postgres.Open(p.DSN()), &gorm.Config{})
		if p.initErr != nil {
			return
		}

		// Lấy sqlDB
		var sqlDB *sql.DB
		sqlDB, p.initErr = db.DB()
		if p.initErr != nil {
			return
		}

		// Cấu hình connection pool
		sqlDB.SetMaxIdleConns(p.Config.Postgres.MaxIdleConnection)
		sqlDB.SetMaxOpenConns(p.Config.Postgres.MaxOpenConnection)
		sqlDB.SetConnMaxLifetime(time.Duration(p.Config.Postgres.MaxLifeTimeConnection) * time.Second)

		//
		p.db = db
	})
	return p.db, p.initErr
}

func (p *Postgres) Ping() error {
	db, err := p.Db()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (p *Postgres) Close() error {
	if p.db != nil {
		sqlDB, err := p.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func (p *Postgres) Migrate(models ...interface{}) error {
	db, err := p.Db()
	if err != nil {
		return err
	}
	return db.AutoMigrate(models...)
}
