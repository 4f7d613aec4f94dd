// Command seeder creates automation rules from a YAML definition file.
// Rules are matched by name: a rule that already exists is left untouched,
// so the command is safe to re-run after editing the file.
//
// Flags:
//
//	--file     path to the rule definition file (default: SEEDER_RULES_PATH or ./rules.yaml)
//	--dry-run  validate definitions without writing to the database
//
// Exit codes: 0 = success, 1 = error or invalid definitions.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/app"
	"github.com/heartmarshall/learning-oracle/internal/app/seeder"
	"github.com/heartmarshall/learning-oracle/internal/config"
)

func main() {
	fileFlag := flag.String("file", "", "path to rule definition YAML")
	dryRunFlag := flag.Bool("dry-run", false, "validate definitions without writing")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig()
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *fileFlag != "" {
		seederCfg.RulesPath = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	defs, err := seeder.ReadRulesFile(seederCfg.RulesPath)
	if err != nil {
		logger.Error("read rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	engine, err := app.NewEngine(ctx, appCfg, logger)
	if err != nil {
		logger.Error("build engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer engine.Close()

	res, err := seeder.New(logger, engine.Rules, seederCfg.DryRun).Run(ctx, defs)
	if err != nil {
		logger.Error("seed rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed",
		slog.String("file", seederCfg.RulesPath),
		slog.Bool("dry_run", seederCfg.DryRun),
		slog.Int("created", res.Created),
		slog.Int("existing", res.Existing),
		slog.Int("invalid", res.Invalid),
	)

	if res.Invalid > 0 {
		os.Exit(1)
	}
}
