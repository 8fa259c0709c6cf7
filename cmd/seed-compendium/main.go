// Package main loads reference skill entries into the compendium table.
// Without -file the entries are derived from the skill reference table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/cory-johannsen/vestige/content"
	"github.com/cory-johannsen/vestige/internal/compendium"
	"github.com/cory-johannsen/vestige/internal/config"
	"github.com/cory-johannsen/vestige/internal/game/actor"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and VESTIGE_* environment")
	envFile := flag.String("env", ".env", "dotenv file loaded into the environment before configuration")
	file := flag.String("file", "", "YAML compendium file; empty derives entries from the skill table")
	collection := flag.String("collection", "", "collection to write; overrides the file and wizard.compendium_collection")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading %s: %v", *envFile, err)
	}

	var (
		cfg config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.LoadDefaults()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	var tablesFS fs.FS = content.FS
	if cfg.Content.Dir != "" {
		tablesFS = os.DirFS(cfg.Content.Dir)
	}
	tables, err := ruleset.LoadTables(tablesFS)
	if err != nil {
		log.Fatalf("loading reference tables: %v", err)
	}

	target := cfg.Wizard.CompendiumCollection
	var entries []actor.CompendiumEntry
	if *file == "" {
		entries = compendium.FromTables(tables)
	} else {
		var fileCollection string
		fileCollection, entries, err = compendium.DecodeFile(*file, tables)
		if err != nil {
			log.Fatalf("reading %s: %v", *file, err)
		}
		if fileCollection != "" {
			target = fileCollection
		}
	}
	if *collection != "" {
		target = *collection
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	n, err := postgres.NewCompendiumRepository(pool.DB()).Upsert(ctx, target, entries)
	if err != nil {
		log.Fatalf("seeding compendium: %v", err)
	}
	fmt.Printf("seeded %d entries into %q in %s\n", n, target, time.Since(start).Round(time.Millisecond))
}
