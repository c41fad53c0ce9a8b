package server

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// mockDB keeps users and files in insertion-ordered slices so
// listing paginates over the store's natural order.
type mockDB struct {
	users     []models.User
	passwords map[uuid.UUID]string
	files     []models.File
}

func newMockDB() *mockDB {
	return &mockDB{passwords: map[uuid.UUID]string{}}
}

func (m *mockDB) Close()     {}
func (m *mockDB) Ping() bool { return true }

func (m *mockDB) NewUser(email, hashedPassword string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return nil, database.UserExists
		}
	}
	u := models.User{Id: uuid.New(), Email: email}
	m.users = append(m.users, u)
	m.passwords[u.Id] = hashedPassword
	return &u, nil
}

func (m *mockDB) GetUserByCreds(email, hashedPassword string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email && m.passwords[u.Id] == hashedPassword {
			user := u
			return &user, nil
		}
	}
	return nil, database.UserNotFound
}

func (m *mockDB) GetUser(id uuid.UUID) (*models.User, error) {
	for _, u := range m.users {
		if u.Id == id {
			user := u
			return &user, nil
		}
	}
	return nil, database.UserNotFound
}

func (m *mockDB) CountUsers() (int64, error) { return int64(len(m.users)), nil }
func (m *mockDB) CountFiles() (int64, error) { return int64(len(m.files)), nil }

func (m *mockDB) NewFile(f models.File) (*models.File, error) {
	f.Id = uuid.New()
	m.files = append(m.files, f)
	return &f, nil
}

func (m *mockDB) GetFile(id, userId uuid.UUID) (*models.File, error) {
	for _, f := range m.files {
		if f.Id == id && f.UserId == userId {
			file := f
			return &file, nil
		}
	}
	return nil, database.FileNotFound
}

func (m *mockDB) FindFile(id uuid.UUID) (*models.File, error) {
	for _, f := range m.files {
		if f.Id == id {
			file := f
			return &file, nil
		}
	}
	return nil, database.FileNotFound
}

func (m *mockDB) ListFiles(userId, parentId uuid.UUID, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}

	matched := []models.File{}
	for _, f := range m.files {
		if f.UserId == userId && f.ParentId == parentId {
			matched = append(matched, f)
		}
	}

	offset := page * database.ListLimit
	if offset >= len(matched) {
		return []models.File{}, nil
	}
	end := offset + database.ListLimit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *mockDB) SetPublic(id, userId uuid.UUID, public bool) (*models.File, error) {
	for i := range m.files {
		if m.files[i].Id == id && m.files[i].UserId == userId {
			m.files[i].IsPublic = public
			file := m.files[i]
			return &file, nil
		}
	}
	return nil, database.FileNotFound
}

// insertFailDB rejects every metadata insert, everything else behaves
type insertFailDB struct {
	*mockDB
}

func (d *insertFailDB) NewFile(f models.File) (*models.File, error) {
	return nil, errors.New("insert rejected")
}

type mockCache struct {
	values map[string]string
	down   bool
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string]string{}}
}

func (m *mockCache) Close() error { return nil }
func (m *mockCache) Ping() bool   { return !m.down }

func (m *mockCache) Get(key string) (string, error) {
	return m.values[key], nil
}

func (m *mockCache) Set(key, value string, expiry time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *mockCache) Del(key string) error {
	delete(m.values, key)
	return nil
}
