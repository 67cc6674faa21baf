// Command admintoken prints a bearer token for the admin sync routes, signed
// with JWT_SECRET from the environment or .env file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gamevault/backend/internal/config"
	"gamevault/backend/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("load_config_failed", "err", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("jwt_secret_missing")
		os.Exit(1)
	}

	token, err := jwt.GenerateToken(cfg.JWTSecret, *subject, jwt.RoleAdmin, *ttl)
	if err != nil {
		slog.Error("generate_token_failed", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
