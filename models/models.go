package models

import (
	"time"

	"github.com/google/uuid"
)

// File types accepted by the upload endpoint.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

type User struct {
	Id    uuid.UUID
	Email string
}

type File struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      string
	IsPublic  bool
	ParentId  uuid.UUID // uuid.Nil means the top-level root
	LocalPath string    // empty for folders
}

type Database interface {
	Close()
	Ping() bool
	NewUser(email, hashedPassword string) (*User, error)
	GetUserByCreds(email, hashedPassword string) (*User, error)
	GetUser(id uuid.UUID) (*User, error)
	CountUsers() (int64, error)
	CountFiles() (int64, error)
	NewFile(f File) (*File, error)
	GetFile(id, userId uuid.UUID) (*File, error)
	FindFile(id uuid.UUID) (*File, error)
	ListFiles(userId, parentId uuid.UUID, page int) ([]File, error)
	SetPublic(id, userId uuid.UUID, public bool) (*File, error)
}

// Cache is a key-value store with per-key expiry.
// A key set with expiry d must be unreadable after d elapsed.
// Get returns an empty string for absent or expired keys.
type Cache interface {
	Close() error
	Ping() bool
	Get(key string) (string, error)
	Set(key, value string, expiry time.Duration) error
	Del(key string) error
}
