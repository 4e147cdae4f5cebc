package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-storefront-api/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users     map[string]users.User
	emailIds  map[string]string // email to user id
	usernames map[string]string // username to user id
	lock      sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:     make(map[string]users.User),
		emailIds:  make(map[string]string),
		usernames: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[user.Email]; ok {
		return users.DuplicateUserErr
	}
	if _, ok := ur.usernames[user.Username]; ok {
		return users.DuplicateUserErr
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.store(*user)
	return nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, users.InvalidIDErr
	}

	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, users.UserNotFoundErr
	}
	return &u, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, users.UserNotFoundErr
	}
	u := ur.users[id]
	return &u, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return users.UserNotFoundErr
	}
	if id, ok := ur.emailIds[user.Email]; ok && id != user.ID {
		return users.DuplicateUserErr
	}
	if id, ok := ur.usernames[user.Username]; ok && id != user.ID {
		return users.DuplicateUserErr
	}

	delete(ur.emailIds, existing.Email)
	delete(ur.usernames, existing.Username)
	ur.store(*user)
	return nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return users.UserNotFoundErr
	}
	delete(ur.emailIds, u.Email)
	delete(ur.usernames, u.Username)
	delete(ur.users, id)
	return nil
}

// store keeps a copy so callers cannot mutate repo state through returned pointers
func (ur *FakeUserRepo) store(u users.User) {
	ur.users[u.ID] = u
	ur.emailIds[u.Email] = u.ID
	ur.usernames[u.Username] = u.ID
}
