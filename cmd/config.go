package cmd

import (
	"fmt"
	"time"
)

// Config carries everything the application reads from the environment.
type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	JWTSecret      string
	StorageBaseURL string
	DraftTTL       time.Duration
}

// ConnectionString builds the Postgres DSN from the database settings.
func (c Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
