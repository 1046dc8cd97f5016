package config

import "time"

// defaultConfig returns the values used for every field no source sets.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-list-keeper",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			DB: DB{MaxOpenConns: 10},
			Files: Files{
				Dir:           "./data/files",
				PublicBaseURL: "http://localhost:8080/files",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
			CacheDSN:       "list-keeper-cache.db",
			CacheTTL:       5 * time.Minute,
		},
		Workers: Workers{
			MigrationResumeInterval: time.Minute,
			MigrationMaxAttempts:    5,
			MigrationStaleAfter:     10 * time.Minute,
			EventBufferSize:         256,
		},
	}
}
