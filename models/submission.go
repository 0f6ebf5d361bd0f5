package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SubmissionStatus string

const (
	InquiryStatusNew        SubmissionStatus = "new"
	InquiryStatusInProgress SubmissionStatus = "in-progress"
	InquiryStatusResolved   SubmissionStatus = "resolved"

	VolunteerStatusPending  SubmissionStatus = "pending"
	VolunteerStatusApproved SubmissionStatus = "approved"
	VolunteerStatusRejected SubmissionStatus = "rejected"
)

type SubmissionKind string

const (
	KindInquiry   SubmissionKind = "inquiry"
	KindVolunteer SubmissionKind = "volunteer"
)

// SubmissionMeta is shared by every reviewable submission and is inlined in
// the stored document.
type SubmissionMeta struct {
	ID        bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Status    SubmissionStatus `bson:"status" json:"status"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt" json:"updatedAt"`
}

func (m *SubmissionMeta) Meta() *SubmissionMeta { return m }

// Submission is implemented by *Inquiry and *Volunteer.
type Submission interface {
	Meta() *SubmissionMeta
}

type Inquiry struct {
	SubmissionMeta `bson:",inline"`

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject string `bson:"subject,omitempty" json:"subject,omitempty"`
	Message string `bson:"message" json:"message"`
}

type Volunteer struct {
	SubmissionMeta `bson:",inline"`

	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Skills       string `bson:"skills,omitempty" json:"skills,omitempty"`
	Availability string `bson:"availability,omitempty" json:"availability,omitempty"`
	Motivation   string `bson:"motivation,omitempty" json:"motivation,omitempty"`
}

type NewsletterSubscription struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	SubscribedAt time.Time     `bson:"subscribedAt" json:"subscribedAt"`
}

// StatusWorkflow lists, per kind, which statuses may precede each status.
// A status maps to itself so re-applying the current status is a no-op.
type StatusWorkflow map[SubmissionStatus][]SubmissionStatus

var InquiryWorkflow = StatusWorkflow{
	InquiryStatusNew:        {InquiryStatusNew},
	InquiryStatusInProgress: {InquiryStatusNew, InquiryStatusInProgress},
	InquiryStatusResolved:   {InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved},
}

var VolunteerWorkflow = StatusWorkflow{
	VolunteerStatusPending:  {VolunteerStatusPending},
	VolunteerStatusApproved: {VolunteerStatusPending, VolunteerStatusApproved},
	VolunteerStatusRejected: {VolunteerStatusPending, VolunteerStatusRejected},
}

// AllowedFrom returns the statuses a record may currently hold for a move to
// target, and false when target is not a status of this workflow.
func (w StatusWorkflow) AllowedFrom(target SubmissionStatus) ([]SubmissionStatus, bool) {
	from, ok := w[target]
	return from, ok
}

func (w StatusWorkflow) Allows(current, target SubmissionStatus) bool {
	from, ok := w[target]
	if !ok {
		return false
	}
	for _, s := range from {
		if s == current {
			return true
		}
	}
	return false
}
