package config

import "os"

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	return os.Getenv("APP_PORT")
}

// Addr returns the listen address for the HTTP server. An empty
// APP_PORT falls back to 8080.
func Addr() string {
	port := Port()
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
