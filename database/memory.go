package database

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewMemoryStores returns process-local stores with the same semantics as
// the Mongo ones. Used by tests and STORE_DRIVER=memory.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:      NewMemoryUserStore(),
		Content:    NewMemoryContentStore(),
		Inquiries:  NewMemorySubmissionStore[models.Inquiry](),
		Volunteers: NewMemorySubmissionStore[models.Volunteer](),
		Newsletter: NewMemoryNewsletterStore(),
		Media:      NewMemoryMediaStore(),
		Ping:       func(context.Context) error { return nil },
	}
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[bson.ObjectID]models.User{}}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) InsertIfAbsent(_ context.Context, user *models.User) (bool, error) {
	email := utils.NormalizeEmail(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return false, nil
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	user.Email = email
	s.users[user.ID] = *user
	return true, nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id bson.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

// SetActive is only offered by the memory store; it lets tests disable an
// account.
func (s *MemoryUserStore) SetActive(id bson.ObjectID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsActive = active
		s.users[id] = u
	}
}

func (s *MemoryUserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *MemoryUserStore) Remove(id bson.ObjectID) {
	s.mu.Lock()
	delete(s.users, id)
	s.mu.Unlock()
}

type MemoryContentStore struct {
	mu   sync.Mutex
	docs map[string]*models.SiteContent
}

func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{docs: map[string]*models.SiteContent{}}
}

func (s *MemoryContentStore) InsertIfAbsent(_ context.Context, key string, sections map[string]any) (bool, error) {
	copied, err := cloneJSON(sections)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[key]; ok {
		return false, nil
	}
	now := time.Now().UTC()
	s.docs[key] = &models.SiteContent{
		Type:      key,
		Sections:  copied.(map[string]any),
		Versions:  map[string]int64{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return true, nil
}

func (s *MemoryContentStore) Get(_ context.Context, key string) (*models.SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	sections, err := cloneJSON(doc.Sections)
	if err != nil {
		return nil, err
	}
	versions := make(map[string]int64, len(doc.Versions))
	for k, v := range doc.Versions {
		versions[k] = v
	}
	return &models.SiteContent{
		Type:      doc.Type,
		Sections:  sections.(map[string]any),
		Versions:  versions,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *MemoryContentStore) ReplaceSection(_ context.Context, key, name string, value any, baseVersion *int64) (int64, error) {
	copied, err := cloneJSON(value)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return 0, ErrNotFound
	}
	if baseVersion != nil && *baseVersion != doc.Versions[name] {
		return 0, ErrVersionConflict
	}
	doc.Sections[name] = copied
	doc.Versions[name]++
	doc.UpdatedAt = time.Now().UTC()
	return doc.Versions[name], nil
}

// cloneJSON deep-copies a JSON-shaped value and normalises it to the types
// encoding/json produces, which is what the Mongo store hands back too.
func cloneJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if _, isMap := v.(map[string]any); isMap && out == nil {
		out = map[string]any{}
	}
	return out, nil
}

type MemorySubmissionStore[T any, PT submissionPtr[T]] struct {
	mu    sync.Mutex
	items map[bson.ObjectID]T
}

func NewMemorySubmissionStore[T any, PT submissionPtr[T]]() *MemorySubmissionStore[T, PT] {
	return &MemorySubmissionStore[T, PT]{items: map[bson.ObjectID]T{}}
}

func (s *MemorySubmissionStore[T, PT]) Insert(_ context.Context, rec *T) error {
	meta := PT(rec).Meta()
	if meta.ID.IsZero() {
		meta.ID = bson.NewObjectID()
	}
	s.mu.Lock()
	s.items[meta.ID] = *rec
	s.mu.Unlock()
	return nil
}

func (s *MemorySubmissionStore[T, PT]) List(_ context.Context) ([]T, error) {
	s.mu.Lock()
	items := make([]T, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		a, b := PT(&items[i]).Meta(), PT(&items[j]).Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() > b.ID.Hex()
	})
	return items, nil
}

func (s *MemorySubmissionStore[T, PT]) Get(_ context.Context, id string) (*T, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (s *MemorySubmissionStore[T, PT]) SetStatus(_ context.Context, id string, from []models.SubmissionStatus, status models.SubmissionStatus) error {
	oid, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[oid]
	if !ok {
		return ErrNotFound
	}
	meta := PT(&it).Meta()
	if !slices.Contains(from, meta.Status) {
		return ErrStatusConflict
	}
	meta.Status = status
	meta.UpdatedAt = time.Now().UTC()
	s.items[oid] = it
	return nil
}

func (s *MemorySubmissionStore[T, PT]) Delete(_ context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	delete(s.items, oid)
	s.mu.Unlock()
	return nil
}

type MemoryNewsletterStore struct {
	mu   sync.Mutex
	subs map[string]models.NewsletterSubscription
}

func NewMemoryNewsletterStore() *MemoryNewsletterStore {
	return &MemoryNewsletterStore{subs: map[string]models.NewsletterSubscription{}}
}

func (s *MemoryNewsletterStore) Subscribe(_ context.Context, sub *models.NewsletterSubscription) (bool, error) {
	email := utils.NormalizeEmail(sub.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[email]; ok {
		return false, nil
	}
	if sub.ID.IsZero() {
		sub.ID = bson.NewObjectID()
	}
	sub.Email = email
	s.subs[email] = *sub
	return true, nil
}

func (s *MemoryNewsletterStore) List(_ context.Context) ([]models.NewsletterSubscription, error) {
	s.mu.Lock()
	items := make([]models.NewsletterSubscription, 0, len(s.subs))
	for _, sub := range s.subs {
		items = append(items, sub)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].SubscribedAt.Equal(items[j].SubscribedAt) {
			return items[i].SubscribedAt.After(items[j].SubscribedAt)
		}
		return items[i].ID.Hex() > items[j].ID.Hex()
	})
	return items, nil
}

func (s *MemoryNewsletterStore) Delete(_ context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, sub := range s.subs {
		if sub.ID == oid {
			delete(s.subs, email)
		}
	}
	return nil
}

type MemoryMediaStore struct {
	mu     sync.Mutex
	assets map[bson.ObjectID]models.MediaAsset
}

func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{assets: map[bson.ObjectID]models.MediaAsset{}}
}

func (s *MemoryMediaStore) Insert(_ context.Context, asset *models.MediaAsset) error {
	if asset.ID.IsZero() {
		asset.ID = bson.NewObjectID()
	}
	s.mu.Lock()
	s.assets[asset.ID] = *asset
	s.mu.Unlock()
	return nil
}

func (s *MemoryMediaStore) List(_ context.Context) ([]models.MediaAsset, error) {
	s.mu.Lock()
	items := make([]models.MediaAsset, 0, len(s.assets))
	for _, a := range s.assets {
		items = append(items, a)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.Hex() > items[j].ID.Hex()
	})
	return items, nil
}

func (s *MemoryMediaStore) Get(_ context.Context, id string) (*models.MediaAsset, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryMediaStore) Delete(_ context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[oid]; !ok {
		return ErrNotFound
	}
	delete(s.assets, oid)
	return nil
}
