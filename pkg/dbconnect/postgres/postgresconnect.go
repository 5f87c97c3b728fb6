package postgres

import (
	_ "github.com/lib/pq"
	"stonepay_admin/config"
	"stonepay_admin/pkg/dbconnect"
	"stonepay_admin/pkg/logger"
)

func NewPgConnector(dbConfig *config.PostgresConfig, log logger.Logger) *dbconnect.Connector {
	return dbconnect.NewConnector(dbConfig, log)
}
