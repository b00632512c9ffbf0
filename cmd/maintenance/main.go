package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"famlink/internal/config"
	"famlink/internal/database"
	"famlink/internal/models"
	"famlink/internal/repository"
	"famlink/internal/service"
)

func main() {
	// Define subcommands
	sweepCmd := flag.NewFlagSet("sweep", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)

	// Sweep flags
	sweepDryRun := sweepCmd.Bool("dry-run", false, "Classify invitations without writing any changes")

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: invitations_YYYYMMDD_HHMMSS.json)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	invitationRepo := repository.NewInvitationRepository(db)

	switch os.Args[1] {
	case "sweep":
		sweepCmd.Parse(os.Args[2:])
		handleSweep(cfg, db, invitationRepo, *sweepDryRun)

	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(invitationRepo, *exportOutput)

	default:
		printUsage()
		os.Exit(1)
	}
}

// handleSweep runs one invitation sweep pass. With -dry-run it only
// reports what a real pass would do.
func handleSweep(cfg *config.Config, db *database.DB, invitationRepo *repository.InvitationRepository, dryRun bool) {
	now := time.Now()

	if dryRun {
		invitations, err := invitationRepo.ListAllInvitations()
		if err != nil {
			log.Fatalf("Failed to load invitations: %v", err)
		}

		var toDelete, toExpire, skipped int
		for _, inv := range invitations {
			switch {
			case inv.Status == "" || inv.CreatedAt.IsZero() || !models.IsKnownInvitationStatus(inv.Status):
				skipped++
			case inv.IsTerminal():
				toDelete++
			case inv.IsStale(now, cfg.InvitationTTL):
				toExpire++
			}
		}
		log.Printf("Dry run: would delete %d, expire %d, skip %d of %d invitations",
			toDelete, toExpire, skipped, len(invitations))
		return
	}

	// Email is never sent from a sweep, so the disabled email service
	// is fine here
	emailService, err := service.NewEmailService("", "", "", "")
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	familyRepo := repository.NewFamilyRepository(db)
	invitationService := service.NewInvitationService(invitationRepo, familyRepo, emailService, cfg.InvitationTTL)

	result, err := invitationService.Sweep(now)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Sweep complete: deleted=%d expired=%d skipped=%d",
		result.Deleted, result.Expired, result.Skipped)
}

// handleExport writes an audit snapshot of all invitations to a JSON file
func handleExport(invitationRepo *repository.InvitationRepository, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("invitations_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	invitations, err := invitationRepo.ListAllInvitations()
	if err != nil {
		log.Fatalf("Failed to load invitations: %v", err)
	}

	data, err := json.MarshalIndent(struct {
		ExportedAt  time.Time           `json:"exported_at"`
		Invitations []models.Invitation `json:"invitations"`
	}{
		ExportedAt:  time.Now().UTC(),
		Invitations: invitations,
	}, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode invitations: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write export file: %v", err)
	}
	log.Printf("Exported %d invitations to %s", len(invitations), outputPath)
}

func printUsage() {
	fmt.Println("Usage: maintenance <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sweep    Expire stale invitations and delete terminal ones")
	fmt.Println("           -dry-run   classify without writing")
	fmt.Println("  export   Write an audit snapshot of all invitations to JSON")
	fmt.Println("           -output    output file path")
}
