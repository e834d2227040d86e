package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
	"github.com/oksasatya/go-employee-service/internal/domain/messaging"
	repo "github.com/oksasatya/go-employee-service/internal/domain/repository"
)

type Service struct {
	Repo           repo.EmployeeRepository
	Publisher      messaging.EventPublisher
	Logger         *logrus.Logger
	PublishTimeout time.Duration
}

func NewService(repo repo.EmployeeRepository, pub messaging.EventPublisher, logger *logrus.Logger, publishTimeout time.Duration) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Repo:           repo,
		Publisher:      pub,
		Logger:         logger,
		PublishTimeout: publishTimeout,
	}
}

// FindAll returns every employee ordered by id.
func (s *Service) FindAll(ctx context.Context) ([]EmployeeDTO, error) {
	s.Logger.Info("getting all employees")
	list, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToDTOs(list), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (EmployeeDTO, error) {
	s.Logger.WithField("employee_id", id).Info("getting employee")
	e, err := s.find(ctx, id)
	if err != nil {
		return EmployeeDTO{}, err
	}
	return mapToDTO(e), nil
}

// Create persists a new employee and emits a CREATED event.
func (s *Service) Create(ctx context.Context, dto EmployeeDTO) (uuid.UUID, error) {
	e := &entity.Employee{}
	if err := mapToEntity(dto, e); err != nil {
		return uuid.Nil, err
	}
	if err := s.ensureEmailFree(ctx, e.Email); err != nil {
		return uuid.Nil, err
	}
	if err := s.Repo.Save(ctx, e); err != nil {
		return uuid.Nil, s.mapRepositoryError(err, e.Email)
	}
	s.Logger.WithField("employee_id", e.ID).Info("created employee")
	s.sendEvent(ctx, e, entity.EventCreated)
	return e.ID, nil
}

// Update overwrites the mutable fields of an existing employee and emits
// an UPDATED event. Email uniqueness is only re-checked when the email
// changes, ignoring case.
func (s *Service) Update(ctx context.Context, id uuid.UUID, dto EmployeeDTO) (uuid.UUID, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !strings.EqualFold(e.Email, dto.Email) {
		if err := s.ensureEmailFree(ctx, dto.Email); err != nil {
			return uuid.Nil, err
		}
	}
	if err := mapToEntity(dto, e); err != nil {
		return uuid.Nil, err
	}
	if err := s.Repo.Save(ctx, e); err != nil {
		return uuid.Nil, s.mapRepositoryError(err, e.Email)
	}
	s.Logger.WithField("employee_id", e.ID).Info("updated employee")
	s.sendEvent(ctx, e, entity.EventUpdated)
	return e.ID, nil
}

// Delete removes an employee and emits a DELETED event. A missing id is
// reported as ErrEmployeeNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return s.mapRepositoryError(err, e.Email)
	}
	s.Logger.WithField("employee_id", id).Info("deleted employee")
	s.sendEvent(ctx, e, entity.EventDeleted)
	return nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, "")
	}
	return e, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.Repo.ExistsByEmailIgnoreCase(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		s.Logger.WithField("email", email).Warn("email already exists")
		return ErrEmailExists
	}
	return nil
}

// mapRepositoryError converts store sentinels into service errors. A
// duplicate-email write means a concurrent request won the check.
func (s *Service) mapRepositoryError(err error, email string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, repo.ErrDuplicateEmail):
		s.Logger.WithField("email", email).Warn("email already exists (write conflict)")
		return ErrEmailExists
	default:
		return err
	}
}

// sendEvent publishes after the write has committed. Failures are logged
// and never undo the mutation.
func (s *Service) sendEvent(ctx context.Context, e *entity.Employee, t entity.EventType) {
	if s.Publisher == nil {
		return
	}
	ev := entity.NewEmployeeEvent(e, t)
	log := s.Logger.WithFields(logrus.Fields{
		"employee_id": ev.UUID,
		"event_id":    ev.EventID,
		"event_type":  ev.EventType,
	})
	log.Info("sending event")

	// the row is committed; a client disconnect must not drop the event
	pctx := context.WithoutCancel(ctx)
	if s.PublishTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(pctx, s.PublishTimeout)
		defer cancel()
	}
	if err := s.Publisher.Publish(pctx, ev); err != nil {
		log.WithError(err).Error("publish event failed")
	}
}
