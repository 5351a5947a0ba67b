package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/logger"

	"wheeladmin/internal/client"
	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
)

// RegistrationPollInterval is how often pending boundary node registrations
// are checked.
const RegistrationPollInterval = 10 * time.Second

const unknownRegistrationError = "Unknown error"

type CustomDomainClient interface {
	ListCustomDomainRecords(ctx context.Context) ([]models.CustomDomainRecord, error)
	CreateCustomDomainRecord(ctx context.Context, req models.CreateCustomDomainRecordRequest) (models.CustomDomainRecord, error)
	UpdateCustomDomainRecord(ctx context.Context, req models.UpdateCustomDomainRecordRequest) error
	DeleteCustomDomainRecord(ctx context.Context, req models.DeleteCustomDomainRecordRequest) error
}

// CustomDomains keeps custom domain records in the wheel service in step
// with their boundary node registrations.
type CustomDomains struct {
	client    CustomDomainClient
	registrar client.BnRegistrar
}

func NewCustomDomains(c CustomDomainClient, registrar client.BnRegistrar) *CustomDomains {
	return &CustomDomains{client: c, registrar: registrar}
}

func (d *CustomDomains) List(ctx context.Context) ([]models.CustomDomainRecord, error) {
	return d.client.ListCustomDomainRecords(ctx)
}

func (d *CustomDomains) Get(ctx context.Context, id string) (models.CustomDomainRecord, error) {
	records, err := d.client.ListCustomDomainRecords(ctx)
	if err != nil {
		return models.CustomDomainRecord{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.CustomDomainRecord{}, errorx.NewNotFound("Custom domain record with id %s not found", id)
}

// Create stores a new domain and registers it at the boundary nodes. When
// the registration fails the record is kept in the not started state.
func (d *CustomDomains) Create(ctx context.Context, domainName string) (models.CustomDomainRecord, error) {
	r, err := d.client.CreateCustomDomainRecord(ctx, models.CreateCustomDomainRecordRequest{DomainName: domainName})
	if err != nil {
		return models.CustomDomainRecord{}, err
	}
	return d.register(ctx, r)
}

// Register starts the boundary node registration of an existing record.
func (d *CustomDomains) Register(ctx context.Context, id string) (models.CustomDomainRecord, error) {
	r, err := d.Get(ctx, id)
	if err != nil {
		return models.CustomDomainRecord{}, err
	}
	if _, ok := r.BnRegistrationState.(models.NotStarted); !ok {
		return models.CustomDomainRecord{}, errorx.New(errorx.Conflict, "Custom domain %s is already registered", r.DomainName)
	}
	return d.register(ctx, r)
}

func (d *CustomDomains) register(ctx context.Context, r models.CustomDomainRecord) (models.CustomDomainRecord, error) {
	requestID, err := d.registrar.CreateRegistration(ctx, r.DomainName)
	if err != nil {
		return r, fmt.Errorf("register %s: %w", r.DomainName, err)
	}
	state := models.Pending{BnRegistrationID: requestID}
	if err := d.client.UpdateCustomDomainRecord(ctx, models.UpdateCustomDomainRecordRequest{ID: r.ID, BnRegistrationState: state}); err != nil {
		return r, err
	}
	r.BnRegistrationState = state
	return r, nil
}

// Delete removes the record and then its boundary node registration, if it
// has one.
func (d *CustomDomains) Delete(ctx context.Context, id string) error {
	r, err := d.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := d.client.DeleteCustomDomainRecord(ctx, models.DeleteCustomDomainRecordRequest{ID: id}); err != nil {
		return err
	}
	if requestID, ok := models.BnRegistrationID(r.BnRegistrationState); ok {
		if err := d.registrar.DeleteRegistration(ctx, requestID); err != nil {
			return fmt.Errorf("delete registration %s: %w", requestID, err)
		}
	}
	return nil
}

// RegistrationState maps a boundary node registration state onto the state
// stored with the record.
func RegistrationState(requestID string, s client.BnRegistrationState) models.BnRegistrationState {
	switch {
	case s.IsAvailable():
		return models.Registered{BnRegistrationID: requestID}
	case s.IsFailed():
		msg := s.FailedMessage
		if msg == "" {
			msg = unknownRegistrationError
		}
		return models.RegistrationFailed{BnRegistrationID: requestID, ErrorMessage: msg}
	default:
		return models.Pending{BnRegistrationID: requestID}
	}
}

// PollRegistration checks the boundary node registration of r and stores
// the resulting state.
func (d *CustomDomains) PollRegistration(ctx context.Context, r models.CustomDomainRecord) (models.CustomDomainRecord, error) {
	requestID, ok := models.BnRegistrationID(r.BnRegistrationState)
	if !ok {
		return r, errorx.NewInvalidArgument("Custom domain %s has no registration", r.DomainName)
	}
	reg, err := d.registrar.GetRegistration(ctx, requestID)
	if err != nil {
		return r, fmt.Errorf("get registration %s: %w", requestID, err)
	}
	state := RegistrationState(requestID, reg.State)
	if err := d.client.UpdateCustomDomainRecord(ctx, models.UpdateCustomDomainRecordRequest{ID: r.ID, BnRegistrationState: state}); err != nil {
		return r, err
	}
	r.BnRegistrationState = state
	return r, nil
}

// PollPending polls every record whose registration is still pending.
func (d *CustomDomains) PollPending(ctx context.Context) error {
	records, err := d.client.ListCustomDomainRecords(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		if _, ok := r.BnRegistrationState.(models.Pending); !ok {
			continue
		}
		updated, err := d.PollRegistration(ctx, r)
		if err != nil {
			logger.Warningf("Polling registration of %s failed: %v", r.DomainName, err)
			continue
		}
		if _, ok := updated.BnRegistrationState.(models.Pending); !ok {
			logger.Infof("Custom domain %s registration finished: %T", r.DomainName, updated.BnRegistrationState)
		}
	}
	return nil
}

// Run polls pending registrations every interval until ctx is done.
func (d *CustomDomains) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.PollPending(ctx); err != nil && ctx.Err() == nil {
				logger.Errorf("Failed to list custom domains: %v", err)
			}
		}
	}
}
