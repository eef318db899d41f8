package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	BIND_ADDRESS          = "0.0.0.0:5002"
	TLS_DOMAINS           = "" // e.g. "example.com,example2.com"
	MYSQL_DSN             = "" // MySQL will be used if this is set
	SQLITE_FILE           = "images.db"
	UPLOAD_DIR            = "./uploads" // Disk storage location, used when S3_BUCKET is not set
	S3_BUCKET             = ""          // Store uploads in S3 when set
	S3_REGION             = "us-east-1"
	S3_ENDPOINT           = "" // For S3 compatible services (MinIO, Wasabi, etc)
	S3_KEY                = ""
	S3_SECRET             = ""
	S3_PREFIX             = "uploads"
	CAPTION_SERVICE_URL   = "http://localhost:5001"
	EMBEDDING_SERVICE_URL = "http://localhost:5001"
	CORS_ORIGINS          = "*" // comma separated
	DEBUG_MODE            = true
	PROCESSING_INTERVAL   = 10 // seconds between indexing passes
	PROCESSING_WORKERS    = 2
	THUMB_SIZE            = 1280 // Upper bound for ?size= thumbnails
)

func init() {
	// Real environment always wins over .env
	_ = godotenv.Load()

	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("UPLOAD_DIR", &UPLOAD_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("CAPTION_SERVICE_URL", &CAPTION_SERVICE_URL)
	readEnvString("EMBEDDING_SERVICE_URL", &EMBEDDING_SERVICE_URL)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("PROCESSING_INTERVAL", &PROCESSING_INTERVAL)
	readEnvInt("PROCESSING_WORKERS", &PROCESSING_WORKERS)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
