package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/model"
	"github.com/staynest/staynest/internal/repository"
)

type output struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@staynest.local", "Account email")
		password    = flag.String("password", "", "Account password (must satisfy the password policy)")
		firstName   = flag.String("first-name", "System", "First name")
		lastName    = flag.String("last-name", "Admin", "Last name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required")
		os.Exit(1)
	}

	if result := auth.ValidatePassword(*password); !result.Valid {
		fmt.Fprintln(os.Stderr, "password rejected:")
		for _, violation := range result.Violations {
			fmt.Fprintln(os.Stderr, " -", violation)
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	account := &model.Account{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: hash,
		FirstName:    *firstName,
		LastName:     *lastName,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}

	if err := repo.InsertAccount(ctx, account); err != nil {
		fmt.Fprintln(os.Stderr, "insert account:", err)
		os.Exit(1)
	}

	out := output{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.ID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
