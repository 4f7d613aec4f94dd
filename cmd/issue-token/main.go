// Command issue-token mints credentials for operators of the admin API.
//
// Usage:
//
//	issue-token [--operator=<uuid>] [--role=admin] [--ttl=12h]
//	issue-token --hash-key=<api key>
//
// The first form prints a signed JWT. The second prints the bcrypt hash to
// put into AUTH_API_KEY_HASH. Requires AUTH_JWT_SECRET for tokens.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/learning-oracle/internal/auth"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

func main() {
	operator := flag.String("operator", "", "operator id (default: random)")
	role := flag.String("role", string(domain.UserRoleAdmin), "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: AUTH_ACCESS_TOKEN_TTL)")
	hashKey := flag.String("hash-key", "", "print the bcrypt hash of this API key and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatalf("hash api key: %v", err)
		}
		fmt.Println(hash)
		return
	}

	var cfg config.AuthConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read auth config: %v", err)
	}
	if *ttl > 0 {
		cfg.AccessTokenTTL = *ttl
	}

	id := uuid.New()
	if *operator != "" {
		parsed, err := uuid.Parse(*operator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --operator: %v\n", err)
			os.Exit(1)
		}
		id = parsed
	}

	token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL).Issue(id, domain.UserRole(*role))
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "operator %s, role %s, expires %s\n", id, *role, time.Now().Add(cfg.AccessTokenTTL).Format(time.RFC3339))
	fmt.Println(token)
}
