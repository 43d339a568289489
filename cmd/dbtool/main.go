package main

import (
	"context"
	"cvrp-route-service/internal/adapters/repositories"
	"cvrp-route-service/internal/adapters/tsplib"
	"cvrp-route-service/internal/config"
	"cvrp-route-service/internal/platform/db"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// dbtool prepares a database: it creates the schema, seeds the configured
// instance directory and imports any .vrp files given as arguments.
func main() {
	configPath := flag.String("config", config.Get("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	skipSeed := flag.Bool("no-seed", false, "only create the schema")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	repo := repositories.NewSQLRepository(conn, cfg.DBDriver)

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !*skipSeed && cfg.SeedDir != "" {
		log.Printf("Seeding instances from %s...", cfg.SeedDir)
		n, err := repositories.SeedFromDir(ctx, repo, cfg.SeedDir)
		if err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Printf("Seeding complete. instances=%d", n)
	}

	for _, path := range flag.Args() {
		inst, err := tsplib.LoadInstanceFile(path)
		if err != nil {
			log.Fatalf("import failed: %v", err)
		}

		solPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".sol"
		if _, err := os.Stat(solPath); err == nil {
			ref, _, err := tsplib.LoadSolutionFile(solPath)
			if err != nil {
				log.Fatalf("import failed: %v", err)
			}
			inst.Reference = ref
		}

		if err := inst.Validate(); err != nil {
			log.Fatalf("import failed: %s: %v", path, err)
		}
		if err := repo.SaveInstance(ctx, inst); err != nil {
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("Imported instance name=%s nodes=%d", inst.Name, inst.Len())
	}
}
