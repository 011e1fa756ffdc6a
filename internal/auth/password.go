package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters - tuned for security vs performance balance
// Time: 3, Memory: 64MB, Threads: 4, KeyLen: 32 bytes
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

var errPasswordTooLong = errors.New("password exceeds 72 bytes")

// Argon2Hasher produces PHC-formatted argon2id hashes
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		Time:    argon2Time,
		Memory:  argon2Memory,
		Threads: argon2Threads,
		KeyLen:  argon2KeyLen,
	}
}

// Hash creates an argon2id hash of the password
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	// Encode as: $argon2id$v=19$m=65536,t=3,p=4$salt$hash
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.Memory,
		h.Time,
		h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// BcryptHasher produces bcrypt hashes at the given cost
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks password against an argon2id or bcrypt hash,
// picking the algorithm from the hash prefix.
func VerifyPassword(encodedHash, password string) bool {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2(encodedHash, password)
	case strings.HasPrefix(encodedHash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
	default:
		return false
	}
}

// verifyArgon2 checks if a password matches the stored hash
func verifyArgon2(encodedHash, password string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(decodedHash) == 0 {
		return false
	}

	inputHash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, inputHash) == 1
}
