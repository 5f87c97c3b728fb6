package config

import (
	"fmt"
)

type DbConfig interface {
	GetConnectionString() string
	DriverName() string
}

// PostgresConfig represents the configuration needed to connect to a PostgreSQL database
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

func (pc *PostgresConfig) GetConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

func (pc *PostgresConfig) DriverName() string { return "postgres" }

// MySQLConfig mirrors PostgresConfig for the MySQL state store.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Params   string `yaml:"params"`
}

func (mc *MySQLConfig) GetConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s",
		mc.User, mc.Password, mc.Host, mc.Port, mc.DBName, mc.Params)
}

func (mc *MySQLConfig) DriverName() string { return "mysql" }
