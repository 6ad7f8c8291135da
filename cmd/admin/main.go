// Command admin provisions officer accounts and runs verification actions
// that are deliberately unavailable through the API (profile roles are
// immutable in-band, so officer accounts must be created out-of-band).
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"nyayadhaar/backend/internal/config"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	store := storage.NewService(db, nil) // Redis not needed for the CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "create-officer":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin create-officer <email> <password> <full_name> <role>")
			os.Exit(1)
		}
		if err := createOfficer(store, os.Args[2], os.Args[3], os.Args[4], os.Args[5]); err != nil {
			log.Fatalf("Error creating officer: %v", err)
		}
		fmt.Printf("Officer account %s created.\n", os.Args[2])
	case "verify-victim":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin verify-victim <victim_id> <verified|rejected>")
			os.Exit(1)
		}
		if err := verifyVictim(store, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error verifying victim: %v", err)
		}
		fmt.Printf("Victim %s marked %s.\n", os.Args[2], os.Args[3])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <create-officer|verify-victim> [args]")
	os.Exit(1)
}

func createOfficer(store *storage.Service, email, password, fullName, role string) error {
	if !models.IsOfficerRole(role) {
		return fmt.Errorf("role %q is not an officer role", role)
	}
	existing, err := store.GetProfileByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("profile %s already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return store.SaveProfile(&models.Profile{
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           fullName,
		Role:               role,
		LanguagePreference: "en",
	})
}

func verifyVictim(store *storage.Service, victimID, status string) error {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return fmt.Errorf("status %q is not a verification outcome", status)
	}
	victim, err := store.GetVictimByID(victimID)
	if err != nil {
		return err
	}
	if victim == nil {
		return fmt.Errorf("victim %s not found", victimID)
	}
	now := time.Now()
	victim.VerificationStatus = status
	victim.VerifiedAt = &now
	return store.SaveVictim(victim)
}
