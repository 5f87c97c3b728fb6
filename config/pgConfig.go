package config

import (
	"os"
)

func (pc *PostgresConfig) overrideFromEnv() {
	pc.Host = getEnv("POSTGRES_HOST", orDefault(pc.Host, "localhost"))
	pc.Port = getEnv("POSTGRES_PORT", orDefault(pc.Port, "5432"))
	pc.User = getEnv("POSTGRES_USER", orDefault(pc.User, "postgres"))
	pc.Password = getEnv("POSTGRES_PASSWORD", orDefault(pc.Password, "postgres"))
	pc.DBName = getEnv("POSTGRES_NAME", orDefault(pc.DBName, "stonepay_admin"))
}

func (mc *MySQLConfig) overrideFromEnv() {
	mc.Host = getEnv("MYSQL_HOST", orDefault(mc.Host, "127.0.0.1"))
	mc.Port = getEnv("MYSQL_PORT", orDefault(mc.Port, "3306"))
	mc.User = getEnv("MYSQL_USER", orDefault(mc.User, "root"))
	mc.Password = getEnv("MYSQL_PASSWORD", mc.Password)
	mc.DBName = getEnv("MYSQL_DATABASE", orDefault(mc.DBName, "stonepay_admin"))
	mc.Params = getEnv("MYSQL_PARAMS", orDefault(mc.Params, "charset=utf8mb4&parseTime=True&loc=UTC"))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
