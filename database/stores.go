package database

import (
	"context"

	"github.com/tamohar/foundationbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// InsertIfAbsent inserts user unless one with the same email exists and
	// reports whether it inserted.
	InsertIfAbsent(ctx context.Context, user *models.User) (bool, error)
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

type ContentStore interface {
	// InsertIfAbsent creates the content document for key with the given
	// sections unless it already exists, and reports whether it inserted.
	InsertIfAbsent(ctx context.Context, key string, sections map[string]any) (bool, error)
	Get(ctx context.Context, key string) (*models.SiteContent, error)
	// ReplaceSection overwrites one section and returns its new version.
	// A non-nil baseVersion must equal the stored version.
	ReplaceSection(ctx context.Context, key, name string, value any, baseVersion *int64) (int64, error)
}

type submissionPtr[T any] interface {
	*T
	models.Submission
}

type SubmissionStore[T any] interface {
	Insert(ctx context.Context, rec *T) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// SetStatus moves a record to status when its current status is one of
	// from. Returns ErrNotFound or ErrStatusConflict.
	SetStatus(ctx context.Context, id string, from []models.SubmissionStatus, status models.SubmissionStatus) error
	// Delete removes the record; unknown ids are not an error.
	Delete(ctx context.Context, id string) error
}

type NewsletterStore interface {
	// Subscribe inserts sub unless its email is already subscribed and
	// reports whether it inserted.
	Subscribe(ctx context.Context, sub *models.NewsletterSubscription) (bool, error)
	List(ctx context.Context) ([]models.NewsletterSubscription, error)
	Delete(ctx context.Context, id string) error
}

type MediaStore interface {
	Insert(ctx context.Context, asset *models.MediaAsset) error
	List(ctx context.Context) ([]models.MediaAsset, error)
	Get(ctx context.Context, id string) (*models.MediaAsset, error)
	Delete(ctx context.Context, id string) error
}

// Stores bundles every collaborator the services need.
type Stores struct {
	Users      UserStore
	Content    ContentStore
	Inquiries  SubmissionStore[models.Inquiry]
	Volunteers SubmissionStore[models.Volunteer]
	Newsletter NewsletterStore
	Media      MediaStore
	Ping       func(ctx context.Context) error
}

func NewMongoStores(m *Mongo) *Stores {
	return &Stores{
		Users:      NewMongoUserStore(m.OpenCollection(UsersCollection)),
		Content:    NewMongoContentStore(m.OpenCollection(ContentCollection)),
		Inquiries:  NewMongoSubmissionStore[models.Inquiry](m.OpenCollection(InquiriesCollection)),
		Volunteers: NewMongoSubmissionStore[models.Volunteer](m.OpenCollection(VolunteersCollection)),
		Newsletter: NewMongoNewsletterStore(m.OpenCollection(NewsletterCollection)),
		Media:      NewMongoMediaStore(m.OpenCollection(MediaCollection)),
		Ping:       m.Ping,
	}
}

func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}
