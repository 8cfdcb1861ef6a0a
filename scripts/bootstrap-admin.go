package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/repository"
	"github.com/roktodan/roktodan/internal/token"
)

type output struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// The admin surface is gated on a role stored in the database, so the first
// admin has to be seeded out of band. This registers (or promotes) a user as
// admin and prints a bearer token for them.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		jwtSecret   = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "JWT signing secret (must match the server)")
		email       = flag.String("email", "admin@roktodan.local", "Admin user email")
		name        = flag.String("name", "bootstrap admin", "Admin user name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}
	if !strings.Contains(*email, "@") {
		fmt.Fprintln(os.Stderr, "invalid email:", *email)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, 5*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if _, err := repo.GetOrCreateUser(ctx, &model.User{
		Email: *email,
		Name:  *name,
		Role:  model.RoleUser,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "ensure user:", err)
		os.Exit(1)
	}

	if err := repo.UpdateUserRole(ctx, *email, model.RoleAdmin); err != nil {
		fmt.Fprintln(os.Stderr, "promote user:", err)
		os.Exit(1)
	}

	bearer, err := token.NewService(*jwtSecret, 0).Issue(*email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}

	out := output{
		Email: *email,
		Role:  model.RoleAdmin,
		Token: bearer,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
