package model

import (
	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/log"
)

type Model struct {
	Config   *cfg.Config  `gorm:"-"`
	Logger   log.Logger   `gorm:"-"`
	Postgres *db.Postgres `gorm:"-"`
}
