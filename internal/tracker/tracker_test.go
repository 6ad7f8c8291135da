package tracker_test

import (
	"errors"
	"strings"
	"testing"

	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"

	"github.com/stretchr/testify/assert"
)

// fakeStorage embeds the interface so each test only fills in the methods it
// expects to be called; anything else panics with a nil dereference, which is
// exactly the signal we want.
type fakeStorage struct {
	storage.Storage

	victims    map[string]*models.Victim
	grievances map[string]*models.Grievance

	listedGrievances []models.Grievance

	savedCase         *models.Case
	savedDisbursement *models.Disbursement
	savedGrievance    *models.Grievance

	updateCalls int
	updateErr   error

	lastUpdate struct {
		id, from, to    string
		disbursedAmount *float64
		transactionID   *string
		resolutionNotes *string
	}
}

func (f *fakeStorage) GetVictimByID(id string) (*models.Victim, error) {
	return f.victims[id], nil
}

func (f *fakeStorage) FindGrievanceByID(pred scope.Predicate, id string) (*models.Grievance, error) {
	return f.grievances[id], nil
}

func (f *fakeStorage) ListGrievances(pred scope.Predicate) ([]models.Grievance, error) {
	return f.listedGrievances, nil
}

func (f *fakeStorage) SaveCase(c *models.Case) error {
	f.savedCase = c
	return nil
}

func (f *fakeStorage) SaveDisbursement(d *models.Disbursement) error {
	f.savedDisbursement = d
	return nil
}

func (f *fakeStorage) SaveGrievance(g *models.Grievance) error {
	f.savedGrievance = g
	return nil
}

func (f *fakeStorage) UpdateCaseStatus(id, from, to string) error {
	f.updateCalls++
	f.lastUpdate.id, f.lastUpdate.from, f.lastUpdate.to = id, from, to
	return f.updateErr
}

func (f *fakeStorage) UpdateDisbursementStatus(id, from, to string, disbursedAmount *float64, transactionID *string) error {
	f.updateCalls++
	f.lastUpdate.id, f.lastUpdate.from, f.lastUpdate.to = id, from, to
	f.lastUpdate.disbursedAmount = disbursedAmount
	f.lastUpdate.transactionID = transactionID
	return f.updateErr
}

func (f *fakeStorage) UpdateGrievanceStatus(id, from, to string, resolutionNotes *string) error {
	f.updateCalls++
	f.lastUpdate.id, f.lastUpdate.from, f.lastUpdate.to = id, from, to
	f.lastUpdate.resolutionNotes = resolutionNotes
	return f.updateErr
}

type fixedDirectory struct {
	victimID string
}

func (d fixedDirectory) FindVictimIDForUser(userID string) (string, error) {
	if d.victimID == "" {
		return "", scope.ErrNoVictim
	}
	return d.victimID, nil
}

func newService(store *fakeStorage, victimID string) *tracker.Service {
	return tracker.NewService(store, scope.NewResolver(fixedDirectory{victimID: victimID}))
}

func officer() *models.Profile {
	return &models.Profile{ID: "officer-1", Role: models.RoleDistrictOfficer}
}

func user() *models.Profile {
	return &models.Profile{ID: "user-1", Role: models.RoleUser}
}

func TestRequestTransitionIllegalSkipsStorage(t *testing.T) {
	store := &fakeStorage{}
	svc := newService(store, "")

	err := svc.RequestTransition(officer(), lifecycle.EntityCase, "c-1",
		models.CaseRegistered, models.CaseInTrial, tracker.TransitionOptions{})

	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
	assert.Zero(t, store.updateCalls)
}

func TestRequestTransitionUserCannotMoveCase(t *testing.T) {
	store := &fakeStorage{}
	svc := newService(store, "v-1")

	err := svc.RequestTransition(user(), lifecycle.EntityCase, "c-1",
		models.CaseRegistered, models.CaseUnderInvestigation, tracker.TransitionOptions{})

	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
	assert.Zero(t, store.updateCalls)
}

func TestRequestTransitionUserWithdrawsOwnGrievance(t *testing.T) {
	store := &fakeStorage{
		grievances: map[string]*models.Grievance{
			"g-1": {ID: "g-1", UserID: "user-1", Status: models.GrievanceOpen},
		},
	}
	svc := newService(store, "")

	err := svc.RequestTransition(user(), lifecycle.EntityGrievance, "g-1",
		models.GrievanceOpen, models.GrievanceClosed, tracker.TransitionOptions{})

	assert.NoError(t, err)
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, models.GrievanceClosed, store.lastUpdate.to)
}

// TestRequestTransitionUserWithdrawsForeignGrievance verifies a grievance
// outside the caller's scope reads as absent, with no write attempted.
func TestRequestTransitionUserWithdrawsForeignGrievance(t *testing.T) {
	store := &fakeStorage{grievances: map[string]*models.Grievance{}}
	svc := newService(store, "")

	err := svc.RequestTransition(user(), lifecycle.EntityGrievance, "g-other",
		models.GrievanceOpen, models.GrievanceClosed, tracker.TransitionOptions{})

	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, store.updateCalls)
}

func TestRequestTransitionSurfacesStoreOutcome(t *testing.T) {
	for _, want := range []error{storage.ErrConflict, storage.ErrNotFound, errors.New("db down")} {
		store := &fakeStorage{updateErr: want}
		svc := newService(store, "")

		err := svc.RequestTransition(officer(), lifecycle.EntityCase, "c-1",
			models.CaseRegistered, models.CaseUnderInvestigation, tracker.TransitionOptions{})

		assert.ErrorIs(t, err, want)
		assert.Equal(t, 1, store.updateCalls)
	}
}

func TestRequestTransitionPassesSettlementDetails(t *testing.T) {
	store := &fakeStorage{}
	svc := newService(store, "")
	amount := 25000.0
	txn := "UTR123456"

	err := svc.RequestTransition(officer(), lifecycle.EntityDisbursement, "d-1",
		models.DisbursementProcessing, models.DisbursementDisbursed,
		tracker.TransitionOptions{DisbursedAmount: &amount, TransactionID: &txn})

	assert.NoError(t, err)
	assert.Equal(t, &amount, store.lastUpdate.disbursedAmount)
	assert.Equal(t, &txn, store.lastUpdate.transactionID)
}

func TestRegisterCase(t *testing.T) {
	store := &fakeStorage{
		victims: map[string]*models.Victim{"v-1": {ID: "v-1", UserID: "user-1"}},
	}
	svc := newService(store, "")

	c := &models.Case{VictimID: "v-1", CaseType: models.CaseTypePoA, IncidentDescription: "assault at workplace"}
	assert.ErrorIs(t, svc.RegisterCase(user(), c), tracker.ErrForbidden)
	assert.Nil(t, store.savedCase)

	assert.ErrorIs(t, svc.RegisterCase(officer(), &models.Case{VictimID: "v-1"}), tracker.ErrInvalid)

	missing := &models.Case{VictimID: "v-404", CaseType: models.CaseTypePoA, IncidentDescription: "x"}
	assert.ErrorIs(t, svc.RegisterCase(officer(), missing), storage.ErrNotFound)

	assert.NoError(t, svc.RegisterCase(officer(), c))
	assert.Equal(t, models.CaseRegistered, store.savedCase.CaseStatus)
	assert.True(t, strings.HasPrefix(store.savedCase.CaseNumber, "CASE-"))
}

func TestSanctionDisbursement(t *testing.T) {
	store := &fakeStorage{}
	svc := newService(store, "")
	leaked := 1000.0

	d := &models.Disbursement{
		CaseID:          "c-1",
		VictimID:        "v-1",
		ReliefType:      models.ReliefImmediate,
		BeneficiaryName: "A. Kumar",
		SanctionAmount:  25000,
		DisbursedAmount: &leaked,
	}

	assert.ErrorIs(t, svc.SanctionDisbursement(user(), d), tracker.ErrForbidden)

	zero := *d
	zero.SanctionAmount = 0
	assert.ErrorIs(t, svc.SanctionDisbursement(officer(), &zero), tracker.ErrInvalid)

	assert.NoError(t, svc.SanctionDisbursement(officer(), d))
	assert.Equal(t, models.DisbursementSanctioned, store.savedDisbursement.DisbursementStatus)
	assert.Nil(t, store.savedDisbursement.DisbursedAmount)
	assert.Equal(t, "officer-1", *store.savedDisbursement.SanctionedBy)
	assert.NotNil(t, store.savedDisbursement.SanctionDate)
	assert.True(t, strings.HasPrefix(store.savedDisbursement.DisbursementNumber, "DBT-"))
}

func TestSubmitGrievance(t *testing.T) {
	store := &fakeStorage{}
	svc := newService(store, "")

	assert.ErrorIs(t, svc.SubmitGrievance(user(), &models.Grievance{}), tracker.ErrInvalid)

	notes := "stale"
	g := &models.Grievance{
		GrievanceType:   models.GrievanceDelay,
		Description:     "payment pending for two months",
		UserID:          "someone-else",
		Status:          models.GrievanceResolved,
		ResolutionNotes: &notes,
	}
	assert.NoError(t, svc.SubmitGrievance(user(), g))
	assert.Equal(t, "user-1", store.savedGrievance.UserID)
	assert.Equal(t, models.GrievanceOpen, store.savedGrievance.Status)
	assert.Equal(t, models.PriorityMedium, store.savedGrievance.Priority)
	assert.Nil(t, store.savedGrievance.ResolutionNotes)
	assert.True(t, strings.HasPrefix(store.savedGrievance.GrievanceNumber, "GRV-"))
}

// TestListGrievancesAnnotates verifies rows come back with their status
// presentation and priority color, and that a corrupt status degrades to the
// neutral fallback instead of failing the listing.
func TestListGrievancesAnnotates(t *testing.T) {
	store := &fakeStorage{
		listedGrievances: []models.Grievance{
			{ID: "g-1", Status: models.GrievanceOpen, Priority: models.PriorityUrgent},
			{ID: "g-2", Status: "mangled", Priority: models.PriorityLow},
		},
	}
	svc := newService(store, "")

	views, err := svc.ListGrievances(officer())
	assert.NoError(t, err)
	assert.Len(t, views, 2)

	assert.NotEqual(t, lifecycle.FallbackPresentation, views[0].Presentation)
	assert.Contains(t, views[0].PriorityColor, "red")

	assert.Equal(t, lifecycle.FallbackPresentation, views[1].Presentation)
}
