package cmd

import "fmt"

// Config carries the runtime settings of the fulfillment service, loaded
// from the environment at startup.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	ArtifactPrefix    string
	ReconcileSchedule string
}

// DSN builds the PostgreSQL connection string from the database settings.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
