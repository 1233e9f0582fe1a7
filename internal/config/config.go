package config

import "os"

type Config struct {
	Port              string
	DatabaseDSN       string
	ProductFile       string
	Env               string
	Currency          string
	RazorpayKeyID     string
	RazorpayKeySecret string
	UnsplashAccessKey string
	ImageCacheDir     string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "pos.db")
	cfg.ProductFile = getEnv("PRODUCT_FILE", "products.txt")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Currency = getEnv("CURRENCY", "INR")
	cfg.RazorpayKeyID = getEnv("RAZORPAY_KEY_ID", "")
	cfg.RazorpayKeySecret = getEnv("RAZORPAY_KEY_SECRET", "")
	cfg.UnsplashAccessKey = getEnv("UNSPLASH_ACCESS_KEY", "")
	cfg.ImageCacheDir = getEnv("IMAGE_CACHE_DIR", "static/cache_images")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
