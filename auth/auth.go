package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// bcryptCost matches the cost the credential was historically hashed with;
// changing it only affects newly seeded credentials.
const bcryptCost = 10

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GeneratePollID creates the opaque short token used in voting links:
// the first 8 characters of a UUIDv4
func GeneratePollID() string {
	return uuid.NewString()[:8]
}

// HashPassword returns a bcrypt hash of the plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// EnsureDefaultAdmin seeds the admin credential on first startup. If the
// username already exists the stored hash is left untouched, so password
// changes in the environment never silently rotate a live credential.
// Returns true if a new credential was created.
func EnsureDefaultAdmin(db *sql.DB, username, password string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = db.Exec(`
		INSERT INTO admins (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, username, hash, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	return true, nil
}

// Authenticate verifies a username/password pair against the stored
// credential. Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func Authenticate(db *sql.DB, username, password string) error {
	var hash string
	err := db.QueryRow(`
		SELECT password_hash FROM admins WHERE username = $1
	`, username).Scan(&hash)

	if err == sql.ErrNoRows {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to query admin: %w", err)
	}

	return CheckPassword(hash, password)
}
