package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
)

type SubmissionService struct {
	inquiries  database.SubmissionStore[models.Inquiry]
	volunteers database.SubmissionStore[models.Volunteer]
	newsletter database.NewsletterStore
	now        func() time.Time
}

func NewSubmissionService(stores *database.Stores) *SubmissionService {
	return &SubmissionService{
		inquiries:  stores.Inquiries,
		volunteers: stores.Volunteers,
		newsletter: stores.Newsletter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *SubmissionService) SubmitInquiry(ctx context.Context, in dto.CreateInquiryDTO) (*models.Inquiry, error) {
	now := s.now()
	rec := &models.Inquiry{
		SubmissionMeta: models.SubmissionMeta{
			Status:    models.InquiryStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    utils.CleanText(in.Name),
		Email:   utils.NormalizeEmail(in.Email),
		Phone:   utils.CleanText(in.Phone),
		Subject: utils.CleanText(in.Subject),
		Message: utils.CleanText(in.Message),
	}
	if rec.Name == "" || rec.Message == "" {
		return nil, fmt.Errorf("%w: name and message must contain text", ErrInvalidSubmission)
	}
	if err := s.inquiries.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SubmissionService) SubmitVolunteer(ctx context.Context, in dto.CreateVolunteerDTO) (*models.Volunteer, error) {
	now := s.now()
	rec := &models.Volunteer{
		SubmissionMeta: models.SubmissionMeta{
			Status:    models.VolunteerStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         utils.CleanText(in.Name),
		Email:        utils.NormalizeEmail(in.Email),
		Phone:        utils.CleanText(in.Phone),
		Skills:       utils.CleanText(in.Skills),
		Availability: utils.CleanText(in.Availability),
		Motivation:   utils.CleanText(in.Motivation),
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("%w: name must contain text", ErrInvalidSubmission)
	}
	if err := s.volunteers.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SubmitNewsletter subscribes email and reports whether it was new.
func (s *SubmissionService) SubmitNewsletter(ctx context.Context, email string) (bool, error) {
	sub := &models.NewsletterSubscription{
		Email:        utils.NormalizeEmail(email),
		SubscribedAt: s.now(),
	}
	return s.newsletter.Subscribe(ctx, sub)
}

func (s *SubmissionService) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *SubmissionService) ListVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return s.volunteers.List(ctx)
}

func (s *SubmissionService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscription, error) {
	return s.newsletter.List(ctx)
}

func (s *SubmissionService) DeleteSubscriber(ctx context.Context, id string) error {
	return s.newsletter.Delete(ctx, id)
}

// UpdateStatus moves a submission along its workflow. Setting the current
// status again succeeds without change.
func (s *SubmissionService) UpdateStatus(ctx context.Context, kind models.SubmissionKind, id string, status models.SubmissionStatus) error {
	switch kind {
	case models.KindInquiry:
		return setStatus(ctx, s.inquiries, models.InquiryWorkflow, id, status)
	case models.KindVolunteer:
		return setStatus(ctx, s.volunteers, models.VolunteerWorkflow, id, status)
	default:
		return fmt.Errorf("unknown submission kind %q", kind)
	}
}

// Delete removes a submission. Unknown ids are not an error.
func (s *SubmissionService) Delete(ctx context.Context, kind models.SubmissionKind, id string) error {
	switch kind {
	case models.KindInquiry:
		return s.inquiries.Delete(ctx, id)
	case models.KindVolunteer:
		return s.volunteers.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown submission kind %q", kind)
	}
}

func setStatus[T any](ctx context.Context, store database.SubmissionStore[T], workflow models.StatusWorkflow, id string, status models.SubmissionStatus) error {
	from, ok := workflow.AllowedFrom(status)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := store.SetStatus(ctx, id, from, status)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrStatusConflict):
		return ErrTransitionNotAllowed
	case err != nil:
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}
