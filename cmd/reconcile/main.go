// Command reconcile is the end-of-day attendance job: for every held session
// on the target date it inserts an explicit ABSENT record for each enrolled
// student who never checked in. Meant to run from cron after the last class.
package main

import (
	"flag"
	"log"
	"time"

	"campus-attendance/internal/config"
	"campus-attendance/internal/db"
	"campus-attendance/internal/models"
	"campus-attendance/internal/schedule"
)

func main() {
	dateFlag := flag.String("date", "", "date to reconcile as YYYY-MM-DD (default: today)")
	flag.Parse()

	cfg := config.Load()

	now := time.Now()
	date := schedule.StartOfDay(now)
	if *dateFlag != "" {
		parsed, err := schedule.ParseDateLocal(*dateFlag)
		if err != nil {
			log.Fatalf("Invalid -date value %q: %v", *dateFlag, err)
		}
		date = parsed
	}

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sessions, absences, err := models.ReconcileDay(date, now)
	if err != nil {
		log.Fatalf("Failed to reconcile %s: %v", date.Format("2006-01-02"), err)
	}

	log.Printf("Reconciled %s: %d sessions processed, %d absences recorded",
		date.Format("2006-01-02"), sessions, absences)
}
