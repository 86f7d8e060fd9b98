package testutil

import (
	"time"

	"github.com/cufc/member-api/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "cufc-member-api-test",
			Env:  "test",
			Port: 8080,
		},
		Mongo: config.MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "cufc_test",
			ConnectTimeout: 10 * time.Second,
		},
		Auth: config.AuthConfig{
			Domain:   "test-tenant.auth0.com",
			Audience: "https://api.test.example.com",
		},
		Client: config.ClientConfig{
			APIURL:   "http://localhost:8080",
			ClientID: "test-client-id",
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
	}
}
