// Command generate_demo writes the demo catalog as files: the sample CSV, its
// markdown export and, optionally, an audit database recording the seed.
// Usage: go run cmd/generate_demo/main.go [-out ./demo] [-db ./demo/audit.db]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/database"
	dbaudit "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
)

const (
	defaultOutputDir = "./demo"
	sampleFileName   = "books.csv"
)

func main() {
	outDir := flag.String("out", defaultOutputDir, "directory to write the demo files into")
	dbPath := flag.String("db", "", "optional audit database to record the seed submissions in")
	flag.Parse()

	log.Printf("Generating demo catalog in %s...", *outDir)

	if err := generate(*outDir, *dbPath); err != nil {
		log.Fatalf("Failed to generate demo catalog: %v", err)
	}

	log.Println("Demo catalog generated successfully!")
}

func generate(outDir, dbPath string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	samplePath := filepath.Join(outDir, sampleFileName)
	if err := os.WriteFile(samplePath, demo.SampleCSV(), 0o644); err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}
	log.Printf("Saved: %s", samplePath)

	books := catalog.NewGuarded(nil)
	adapter := presenter.NewBookAdapter(books)
	submissions := services.NewSubmissionService(books, adapter)

	if dbPath != "" {
		// Start fresh so the audit trail holds exactly one seed
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove existing audit database: %w", err)
		}
		db, err := database.NewDatabase(dbPath, "warn")
		if err != nil {
			return err
		}
		defer db.Close()

		auditService := audit.NewService(dbaudit.NewRepository(db.DB))
		defer auditService.Wait()
		submissions.SetAuditor(auditService)
	}

	result, err := demo.Seed(submissions)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d books (%d rejected)", result.Accepted, result.Rejected)

	exported, err := exporters.NewMarkdownExporter(outDir).Export(books.Snapshot())
	if err != nil {
		return fmt.Errorf("export markdown: %w", err)
	}
	log.Printf("Saved: %s (%d books in %d genres)", exported.OutputPath, exported.BooksProcessed, exported.GenresProcessed)

	return nil
}
