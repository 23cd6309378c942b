package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	csvPath := fs.String("csv", "", "path to CSV file (name;category;quantity;min_quantity;unit)")
	dbPath := fs.String("db", "pantry.db", "path to the pantry database")
	aliasFile := fs.String("aliases", "", "optional YAML alias overrides")
	delimiter := fs.String("delimiter", ";", "CSV field delimiter")
	encoding := fs.String("encoding", "utf-8", "CSV file encoding (e.g. utf-8, iso-8859-1)")
	noHeader := fs.Bool("no-header", false, "CSV has no header row")
	fs.Parse(args)

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  pantryd seed --csv <file> [--db <path>] [--aliases <file>]")
		os.Exit(1)
	}

	lex := voice.DefaultLexicon()
	if *aliasFile != "" {
		if err := lex.LoadOverrides(*aliasFile); err != nil {
			fmt.Fprintf(os.Stderr, "load aliases: %v\n", err)
			os.Exit(1)
		}
	}

	rows, err := pantry.ReadSeedCSV(*csvPath, pantry.CSVFormat{
		Delimiter: *delimiter,
		Encoding:  *encoding,
		HasHeader: !*noHeader,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "read CSV: %v\n", err)
		os.Exit(1)
	}

	store, err := pantry.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	inserted := 0
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		it := pantry.Item{
			Name:            row.Name,
			Category:        lex.NormalizeCategory(row.Category),
			CurrentQuantity: row.Quantity,
			MinQuantity:     row.MinQuantity,
			Unit:            lex.NormalizeUnit(row.Unit),
		}
		if it.MinQuantity <= 0 {
			it.MinQuantity = 1
		}
		if _, err := store.Insert(it); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] insert: %v\n", row.Name, err)
			continue
		}
		inserted++
	}

	fmt.Printf("Seeded %d items into %s\n", inserted, *dbPath)
}
