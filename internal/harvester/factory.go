package harvester

import (
	"fmt"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/log"
)

func Factory(version string, logger log.Logger, config *cfg.Config, pg *db.Postgres) (Harvester, error) {
	switch version {
	case "v1":
		return NewHarvesterV1(logger, config, pg)
	case "v2":
		return NewHarvesterV2(logger, config)
	default:
		return nil, fmt.Errorf("[ERROR] Unsupported harvester version: %s", version)
	}
}
