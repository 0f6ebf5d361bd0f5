package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestInquiryStatusScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.subs.SubmitInquiry(ctx, dto.CreateInquiryDTO{Name: "A", Email: "a@x.com", Phone: "123", Subject: "Hi", Message: "test"})
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusNew, rec.Status)

	require.NoError(t, f.subs.UpdateStatus(ctx, models.KindInquiry, rec.ID.Hex(), models.InquiryStatusResolved))

	items, err := f.subs.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.InquiryStatusResolved, items[0].Status)
	assert.Equal(t, rec.ID, items[0].ID)
	assert.True(t, rec.CreatedAt.Equal(items[0].CreatedAt))
}

func TestUpdateStatusWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inq, err := f.subs.SubmitInquiry(ctx, dto.CreateInquiryDTO{Name: "A", Email: "a@x.com", Message: "m"})
	require.NoError(t, err)
	vol, err := f.subs.SubmitVolunteer(ctx, dto.CreateVolunteerDTO{Name: "V", Email: "v@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.VolunteerStatusPending, vol.Status)

	steps := []struct {
		kind   models.SubmissionKind
		id     string
		status models.SubmissionStatus
		err    error
	}{
		{models.KindInquiry, inq.ID.Hex(), "in-progress", nil},
		{models.KindInquiry, inq.ID.Hex(), "in-progress", nil},
		{models.KindInquiry, inq.ID.Hex(), "new", ErrTransitionNotAllowed},
		{models.KindInquiry, inq.ID.Hex(), "approved", ErrInvalidStatus},
		{models.KindInquiry, inq.ID.Hex(), "resolved", nil},
		{models.KindInquiry, inq.ID.Hex(), "in-progress", ErrTransitionNotAllowed},
		{models.KindVolunteer, vol.ID.Hex(), "resolved", ErrInvalidStatus},
		{models.KindVolunteer, vol.ID.Hex(), "approved", nil},
		{models.KindVolunteer, vol.ID.Hex(), "rejected", ErrTransitionNotAllowed},
		{models.KindVolunteer, vol.ID.Hex(), "pending", ErrTransitionNotAllowed},
		{models.KindVolunteer, bson.NewObjectID().Hex(), "approved", ErrNotFound},
		{models.KindVolunteer, "not-an-id", "approved", ErrNotFound},
	}
	for i, step := range steps {
		err := f.subs.UpdateStatus(ctx, step.kind, step.id, step.status)
		if step.err == nil {
			assert.NoError(t, err, "step %d", i)
		} else {
			assert.ErrorIs(t, err, step.err, "step %d", i)
		}
	}
}

func TestSubmissionsAreSanitized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.subs.SubmitInquiry(ctx, dto.CreateInquiryDTO{
		Name:    "<b>Mallory</b>",
		Email:   "Mallory@Example.org",
		Message: "hello <script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mallory", rec.Name)
	assert.Equal(t, "mallory@example.org", rec.Email)
	assert.NotContains(t, rec.Message, "<script>")

	_, err = f.subs.SubmitInquiry(ctx, dto.CreateInquiryDTO{Name: "<i></i>", Email: "a@x.com", Message: "m"})
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestSubmissionsKeepPunctuation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.subs.SubmitInquiry(ctx, dto.CreateInquiryDTO{
		Name:    "Seán O'Brien",
		Email:   "sean@example.org",
		Subject: "Q&A",
		Message: `I'd like to help, 5 < 10 & "yes"`,
	})
	require.NoError(t, err)

	items, err := f.subs.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rec.ID, items[0].ID)
	assert.Equal(t, "Seán O'Brien", items[0].Name)
	assert.Equal(t, "Q&A", items[0].Subject)
	assert.Equal(t, `I'd like to help, 5 < 10 & "yes"`, items[0].Message)

	vol, err := f.subs.SubmitVolunteer(ctx, dto.CreateVolunteerDTO{Name: "Ann & Bob", Email: "ab@example.org", Skills: "teaching, first-aid & cooking"})
	require.NoError(t, err)
	assert.Equal(t, "Ann & Bob", vol.Name)
	assert.Equal(t, "teaching, first-aid & cooking", vol.Skills)
}

func TestNewsletterIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.subs.SubmitNewsletter(ctx, "Reader@Example.org")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.subs.SubmitNewsletter(ctx, "reader@example.org")
	require.NoError(t, err)
	assert.False(t, created)

	subs, err := f.subs.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	require.NoError(t, f.subs.DeleteSubscriber(ctx, subs[0].ID.Hex()))
	subs, err = f.subs.ListSubscribers(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	vol, err := f.subs.SubmitVolunteer(ctx, dto.CreateVolunteerDTO{Name: "V", Email: "v@x.com"})
	require.NoError(t, err)

	require.NoError(t, f.subs.Delete(ctx, models.KindVolunteer, vol.ID.Hex()))
	require.NoError(t, f.subs.Delete(ctx, models.KindVolunteer, vol.ID.Hex()))
	require.NoError(t, f.subs.Delete(ctx, models.KindInquiry, "does-not-exist"))

	items, err := f.subs.ListVolunteers(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
