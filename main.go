package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultCSV   = "BAL_Ravens_2024.csv"
	defaultDB    = "ravens_2024.db"
	defaultTable = "ravens_2024"
	defaultIDCol = "row_id"
	defaultOut   = "ravens_wp.csv"
	defaultJSON  = "ravens_wp.json"
	defaultAddr  = ":8080"
)

// envOr reads an override from the environment (a .env file counts, via
// godotenv) before falling back to the built-in default. Flags beat both.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]

Commands:
  build-db   Load the play-by-play CSV into a SQLite table
  extract    Derive the win probability exports from the table
  serve      Serve the win probability charts over HTTP

Run "%s <command> -h" for the command's flags.
`, os.Args[0], os.Args[0])
}

func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build-db":
		err = runBuildDB(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func runBuildDB(args []string) error {
	fs := flag.NewFlagSet("build-db", flag.ExitOnError)
	csvPath := fs.String("csv", envOr("RAVENS_CSV", defaultCSV), "Path to the source CSV file")
	dbPath := fs.String("db", envOr("RAVENS_DB", defaultDB), "SQLite database output path")
	table := fs.String("table", envOr("RAVENS_TABLE", defaultTable), "Destination table name")
	idCol := fs.String("id-col", defaultIDCol, "Name of the assigned row identifier column")
	ifExists := fs.String("if-exists", "replace", "Behavior if the table exists: fail, replace or append")
	fs.Parse(args)

	// Check the source before sql.Open can create an empty db file.
	if _, err := os.Stat(*csvPath); err != nil {
		return fmt.Errorf("CSV not found: %s", *csvPath)
	}

	db, err := openDB(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := loadCSV(db, *csvPath, *table, *idCol, *ifExists)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Wrote %d rows to %s table '%s'\n", count, *dbPath, *table)
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	dbPath := fs.String("db", envOr("RAVENS_DB", defaultDB), "SQLite database path")
	table := fs.String("table", envOr("RAVENS_TABLE", defaultTable), "Source table name")
	outCSV := fs.String("csv-out", envOr("RAVENS_OUT_CSV", defaultOut), "Flat CSV output path")
	outJSON := fs.String("json-out", envOr("RAVENS_OUT_JSON", defaultJSON), "Nested JSON output path")
	fs.Parse(args)

	db, err := openExistingDB(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	plays, err := extractPlays(db, *table)
	if err != nil {
		return err
	}
	season := aggregateSeason(plays)
	if err := writeExports(season, *outCSV, *outJSON); err != nil {
		return err
	}
	fmt.Printf("✅ Extracted %d plays across %d games -> %s, %s\n",
		len(plays), len(season.Games), *outCSV, *outJSON)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", envOr("RAVENS_DB", defaultDB), "SQLite database path")
	table := fs.String("table", envOr("RAVENS_TABLE", defaultTable), "Source table name")
	addr := fs.String("addr", envOr("RAVENS_ADDR", defaultAddr), "Listen address")
	fs.Parse(args)

	db, err := openExistingDB(*dbPath)
	if err != nil {
		return err
	}
	plays, err := extractPlays(db, *table)
	db.Close()
	if err != nil {
		return err
	}
	return serveSeason(aggregateSeason(plays), *addr)
}
