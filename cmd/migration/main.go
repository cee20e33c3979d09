package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Schema migration runner for the prediction store. Applies the SQL files
// under migrations/ against DB_URL.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 2
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Print("DB_URL is required")
		return 1
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Printf("resolve migrations dir: %v", err)
		return 1
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		log.Printf("create migrator: %v", err)
		return 1
	}
	defer closeMigrator(m)

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "up":
		return finish(m.Up(), func() { log.Printf("migrations applied (source=%s)", sourceURL) })
	case "down":
		steps, parseErr := parseSteps(args[1:])
		if parseErr != nil {
			log.Print(parseErr)
			return 1
		}
		return finish(m.Steps(-steps), func() { log.Printf("rolled back %d migration(s)", steps) })
	case "version":
		return reportVersion(m)
	case "force":
		if len(args) < 2 {
			log.Print("force requires a version argument")
			return 1
		}
		version, parseErr := parseVersion(args[1])
		if parseErr != nil {
			log.Print(parseErr)
			return 1
		}
		if err := m.Force(version); err != nil {
			log.Printf("force version %d: %v", version, err)
			return 1
		}
		log.Printf("forced version to %d", version)
		return 0
	default:
		printUsage()
		return 2
	}
}

func finish(err error, onSuccess func()) int {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Print("no migration changes")
		return 0
	}
	if err != nil {
		log.Print(err)
		return 1
	}
	onSuccess()
	return 0
}

func reportVersion(m *migrate.Migrate) int {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return 0
	}
	if err != nil {
		log.Printf("read version: %v", err)
		return 1
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return 0
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}

	return int(value), nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./migrations",
		"/app/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./migrations, /app/migrations)")
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
}
