package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"nyayadhaar/backend/internal/config"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the entity id does not exist (in any scope).
	ErrNotFound = errors.New("entity not found")
	// ErrConflict means the entity exists but its current status no longer
	// matches the expected one; a concurrent transition won the race.
	ErrConflict = errors.New("status changed concurrently")
)

// Storage is the persistence surface the services depend on. Filtered reads
// accept a scope predicate and return rows newest-first; conditional status
// writes only apply when the stored status still matches the expected one.
type Storage interface {
	SaveProfile(profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)

	SaveVictim(victim *models.Victim) error
	GetVictimByID(id string) (*models.Victim, error)
	FindVictimIDForUser(userID string) (string, error)

	SaveCase(c *models.Case) error
	SaveDisbursement(d *models.Disbursement) error
	SaveGrievance(g *models.Grievance) error

	ListCases(pred scope.Predicate) ([]models.Case, error)
	ListDisbursements(pred scope.Predicate) ([]models.Disbursement, error)
	ListGrievances(pred scope.Predicate) ([]models.Grievance, error)
	FindGrievanceByID(pred scope.Predicate, id string) (*models.Grievance, error)

	CountCases(pred scope.Predicate) (int64, error)
	CountDisbursementsByStatus(pred scope.Predicate, statuses []string) (int64, error)
	CountGrievancesByStatus(pred scope.Predicate, statuses []string) (int64, error)
	CountVerifiedVictims() (int64, error)

	UpdateCaseStatus(id, from, to string) error
	UpdateDisbursementStatus(id, from, to string, disbursedAmount *float64, transactionID *string) error
	UpdateGrievanceStatus(id, from, to string, resolutionNotes *string) error

	SaveChatExchange(exchange *models.ChatExchange) error
}

// Service implements Storage over PostgreSQL (GORM) with a Redis cache for
// the victim directory lookups.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService creates the storage service.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) SaveProfile(profile *models.Profile) error {
	return s.DB.Save(profile).Error
}

// GetProfileByID returns nil without an error when the profile is absent.
func (s *Service) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail returns nil without an error when no profile matches.
func (s *Service) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func victimCacheKey(userID string) string { return "victim:" + userID }

// SaveVictim persists the victim and drops the cached directory entry for
// the linked user, so the next scope resolution sees the new record.
func (s *Service) SaveVictim(victim *models.Victim) error {
	if err := s.DB.Save(victim).Error; err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(s.Ctx, victimCacheKey(victim.UserID)).Err(); err != nil {
			log.Printf("WARNING: failed to invalidate victim cache for user %s: %v", victim.UserID, err)
		}
	}
	return nil
}

func (s *Service) GetVictimByID(id string) (*models.Victim, error) {
	var victim models.Victim
	err := s.DB.First(&victim, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &victim, nil
}

// FindVictimIDForUser resolves the victim linked to a user profile, checking
// Redis first. A missing link is scope.ErrNoVictim, not a storage failure.
func (s *Service) FindVictimIDForUser(userID string) (string, error) {
	key := victimCacheKey(userID)
	if s.Redis != nil {
		cached, err := s.Redis.Get(s.Ctx, key).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			// Cache trouble is not fatal; fall through to the database.
			log.Printf("WARNING: victim cache read failed for user %s: %v", userID, err)
		}
	}

	var victim models.Victim
	err := s.DB.Select("id").First(&victim, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", scope.ErrNoVictim
	}
	if err != nil {
		return "", err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(s.Ctx, key, victim.ID, config.VictimCacheTTL).Err(); err != nil {
			log.Printf("WARNING: victim cache write failed for user %s: %v", userID, err)
		}
	}
	return victim.ID, nil
}

func (s *Service) SaveCase(c *models.Case) error {
	return s.DB.Save(c).Error
}

func (s *Service) SaveDisbursement(d *models.Disbursement) error {
	return s.DB.Save(d).Error
}

func (s *Service) SaveGrievance(g *models.Grievance) error {
	return s.DB.Save(g).Error
}

// ListCases returns the cases visible through pred, newest first.
func (s *Service) ListCases(pred scope.Predicate) ([]models.Case, error) {
	var cases []models.Case
	err := s.DB.Scopes(gormScope(pred)).Order("created_at DESC").Find(&cases).Error
	if err != nil {
		log.Printf("ERROR: failed to list cases: %v", err)
		return nil, err
	}
	return cases, nil
}

// ListDisbursements returns the disbursements visible through pred, newest first.
func (s *Service) ListDisbursements(pred scope.Predicate) ([]models.Disbursement, error) {
	var disbursements []models.Disbursement
	err := s.DB.Scopes(gormScope(pred)).Order("created_at DESC").Find(&disbursements).Error
	if err != nil {
		log.Printf("ERROR: failed to list disbursements: %v", err)
		return nil, err
	}
	return disbursements, nil
}

// ListGrievances returns the grievances visible through pred, newest first.
func (s *Service) ListGrievances(pred scope.Predicate) ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.DB.Scopes(gormScope(pred)).Order("created_at DESC").Find(&grievances).Error
	if err != nil {
		log.Printf("ERROR: failed to list grievances: %v", err)
		return nil, err
	}
	return grievances, nil
}

// FindGrievanceByID returns the grievance only if pred makes it visible; an
// invisible or absent grievance is nil without an error.
func (s *Service) FindGrievanceByID(pred scope.Predicate, id string) (*models.Grievance, error) {
	var grievance models.Grievance
	err := s.DB.Scopes(gormScope(pred)).First(&grievance, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

func (s *Service) CountCases(pred scope.Predicate) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Case{}).Scopes(gormScope(pred)).Count(&count).Error
	return count, err
}

func (s *Service) CountDisbursementsByStatus(pred scope.Predicate, statuses []string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Disbursement{}).
		Scopes(gormScope(pred)).
		Where("disbursement_status IN ?", statuses).
		Count(&count).Error
	return count, err
}

func (s *Service) CountGrievancesByStatus(pred scope.Predicate, statuses []string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Grievance{}).
		Scopes(gormScope(pred)).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

func (s *Service) CountVerifiedVictims() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Victim{}).
		Where("verification_status = ?", models.VerificationVerified).
		Count(&count).Error
	return count, err
}

// UpdateCaseStatus applies a single conditional update guarded by the
// expected current status. RowsAffected decides between success, conflict
// and not-found; the store's outcome is authoritative, there is no retry.
func (s *Service) UpdateCaseStatus(id, from, to string) error {
	return s.conditionalStatusUpdate(&models.Case{}, "case_status", id, from,
		map[string]interface{}{"case_status": to})
}

// UpdateDisbursementStatus transitions a disbursement. Reaching disbursed
// stamps the disbursement date and records the disbursed amount and
// transaction id when provided; no other transition touches those columns.
func (s *Service) UpdateDisbursementStatus(id, from, to string, disbursedAmount *float64, transactionID *string) error {
	updates := map[string]interface{}{"disbursement_status": to}
	if to == models.DisbursementDisbursed {
		updates["disbursement_date"] = time.Now()
		if disbursedAmount != nil {
			updates["disbursed_amount"] = *disbursedAmount
		}
		if transactionID != nil {
			updates["transaction_id"] = *transactionID
		}
	}
	return s.conditionalStatusUpdate(&models.Disbursement{}, "disbursement_status", id, from, updates)
}

// UpdateGrievanceStatus transitions a grievance. Reaching resolved or closed
// stamps resolved_at and stores the resolution notes when provided.
func (s *Service) UpdateGrievanceStatus(id, from, to string, resolutionNotes *string) error {
	updates := map[string]interface{}{"status": to}
	if to == models.GrievanceResolved || to == models.GrievanceClosed {
		updates["resolved_at"] = time.Now()
		if resolutionNotes != nil {
			updates["resolution_notes"] = *resolutionNotes
		}
	}
	return s.conditionalStatusUpdate(&models.Grievance{}, "status", id, from, updates)
}

func (s *Service) conditionalStatusUpdate(model interface{}, statusColumn, id, from string, updates map[string]interface{}) error {
	result := s.DB.Model(model).
		Where("id = ? AND "+statusColumn+" = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		log.Printf("ERROR: conditional status update failed for id %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the row is gone or its status moved on.
	var count int64
	if err := s.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

// SaveChatExchange appends one assistant exchange to the log.
func (s *Service) SaveChatExchange(exchange *models.ChatExchange) error {
	if err := s.DB.Create(exchange).Error; err != nil {
		log.Printf("ERROR: failed to save chat exchange for session %s: %v", exchange.SessionID, err)
		return err
	}
	return nil
}

func gormScope(pred scope.Predicate) func(*gorm.DB) *gorm.DB {
	if pred == nil {
		return scope.Unrestricted
	}
	return pred
}
