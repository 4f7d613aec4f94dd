// Command migrate applies the SQL migrations in migrations/ with goose.
//
// Usage:
//
//	migrate [--dir=migrations] up|up-by-one|down|status|version
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with goose SQL migrations")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		fmt.Fprintln(os.Stderr, "Usage: migrate [--dir=migrations] up|up-by-one|down|status|version")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dir))
	if err != nil {
		log.Fatalf("goose provider: %v", err)
	}

	if err := run(ctx, provider, cmd); err != nil {
		log.Fatalf("migrate %s: %v", cmd, err)
	}
}

func run(ctx context.Context, p *goose.Provider, cmd string) error {
	switch cmd {
	case "up":
		results, err := p.Up(ctx)
		for _, r := range results {
			printResult(r)
		}
		return err
	case "up-by-one":
		r, err := p.UpByOne(ctx)
		if r != nil {
			printResult(r)
		}
		return err
	case "down":
		r, err := p.Down(ctx)
		if r != nil {
			printResult(r)
		}
		return err
	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%5d  %-28s  %s\n", s.Source.Version, applied, s.Source.Path)
		}
		return nil
	case "version":
		v, err := p.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printResult(r *goose.MigrationResult) {
	status := "OK"
	if r.Error != nil {
		status = "FAILED: " + r.Error.Error()
	}
	fmt.Printf("%-4s %5d  %-40s %8s  %s\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond), status)
}
