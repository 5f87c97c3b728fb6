package mysql

import (
	_ "github.com/go-sql-driver/mysql"
	"stonepay_admin/config"
	"stonepay_admin/pkg/dbconnect"
	"stonepay_admin/pkg/logger"
)

func NewMySQLConnector(dbConfig *config.MySQLConfig, log logger.Logger) *dbconnect.Connector {
	return dbconnect.NewConnector(dbConfig, log)
}
