package config

import "time"

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:   "localhost",
			Port:   8081,
			AppURL: "http://localhost:8081",
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:9001/api/v1",
			Timeout: 5 * time.Second,
		},
		Session: SessionConfig{
			Secret: "test-session-secret",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "vantage_test",
			User:     "test_user",
			Password: "test_password",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}
