package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"io/fs"
	"log"
	"os"
)

const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	defaultDataFile   = "students.jsonl"
	defaultSQLiteFile = "students.db"
	defaultDBPort     = "5432"
)

type Config struct {
	Storage  string
	DataFile string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

// Load reads an optional .env file and then the process environment. The data
// file is left empty when unset so flag overrides can pick the storage first;
// call ApplyDefaults afterwards.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("Failed to read .env file:", err)
	}

	cfg := &Config{
		Storage:    getEnv("ROSTER_STORAGE", StorageFile),
		DataFile:   os.Getenv("ROSTER_DATA_FILE"),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", defaultDBPort),
	}
	return cfg
}

// ApplyDefaults fills in the data file for the selected storage when none is set.
func (c *Config) ApplyDefaults() {
	if c.DataFile != "" {
		return
	}
	switch c.Storage {
	case StorageSQLite:
		c.DataFile = defaultSQLiteFile
	case StorageFile:
		c.DataFile = defaultDataFile
	}
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite:
		if c.DataFile == "" {
			return fmt.Errorf("config: data file is required for %s storage", c.Storage)
		}
	case StoragePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("config: postgres storage requires DB_HOST, DB_USER and DB_NAME")
		}
	default:
		return fmt.Errorf("config: unknown storage %q (must be file, sqlite or postgres)", c.Storage)
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword + " dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
