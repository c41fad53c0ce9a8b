package database

import (
	"crypto/sha1"
	"errors"
	"fmt"
)

/*

	Database related errors

*/
var FileNotFound error = errors.New("File not found")
var UserNotFound error = errors.New("User not found")
var UserExists error = errors.New("User exists")

// Page size of ListFiles
const ListLimit = 20

// Returns sha1 hex digest of a plaintext password.
// The digest is unsalted on purpose: stored credentials already use
// this exact format and changing it would lock out every account.
func HashPassword(password string) string {
	hash := sha1.Sum([]byte(password))
	return fmt.Sprintf("%x", hash)
}
