package repo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memUser struct {
	profile Profile
	hash    string
}

// MemoryRepository keeps accounts in process memory. Used when no
// database is configured and in tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*memUser
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int]*memUser)}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.profile.Login == login || u.profile.Email == email {
			return 0, fmt.Errorf("user %q already exists", login)
		}
	}
	r.nextID++
	r.users[r.nextID] = &memUser{
		profile: Profile{ID: r.nextID, Login: login, Email: email, CreatedAt: time.Now()},
		hash:    password,
	}
	return r.nextID, nil
}

func (r *MemoryRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, u := range r.users {
		if u.profile.Login == login {
			return id, u.hash, nil
		}
	}
	return 0, "", nil
}

func (r *MemoryRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return u.profile, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, id int, upd ProfileUpdate) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	u.profile.FullName = upd.FullName
	u.profile.License = upd.License
	u.profile.Organization = upd.Organization
	return u.profile, nil
}
