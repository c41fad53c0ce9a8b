package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/noisersup/files-manager-api/cache"
	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/logger"
	"github.com/noisersup/files-manager-api/server"
	"github.com/noisersup/files-manager-api/storage"
)

func main() {
	v := flag.Bool("v", false, "verbose output")
	flag.Parse()

	dbName := getEnv("DB_NAME", "files_manager")
	user := getEnv("DB_USER", "root")
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "26257")
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")
	folderPath := getEnv("FOLDER_PATH", "/tmp/files_manager")
	apiPort := getEnv("API_PORT", "8000")

	l := logger.New(*v)

	dbPayload := fmt.Sprintf("postgresql://%s@%s:%s?sslmode=disable", user, host, port)

	l.LogV("Connecting to database %s with payload: %s", dbName, dbPayload)

	db, err := database.ConnectDB(dbPayload, dbName)
	if err != nil {
		l.Fatal(err.Error())
	}
	defer db.Close()

	l.LogV("Connecting to token cache at %s", redisURL)

	c, err := cache.InitCache(redisURL)
	if err != nil {
		l.Fatal(err.Error())
	}
	defer c.Close()

	files, err := storage.InitStorage(folderPath)
	if err != nil {
		l.Fatal(err.Error())
	}

	if err = server.InitServer(l, db, c, files, apiPort); err != nil {
		l.Fatal(err.Error())
	}
}

func getEnv(envName, defValue string) string {
	env := os.Getenv(envName)
	if env == "" {
		return defValue
	}
	return env
}
