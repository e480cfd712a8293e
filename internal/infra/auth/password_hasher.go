// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const argon2Prefix = "$argon2id$"

// Upper bounds applied when decoding stored argon2id parameters, so a corrupted
// hash cannot make Check allocate unbounded memory.
const (
	maxArgon2Memory     = 1 << 21 // KiB
	maxArgon2Iterations = 64
	maxArgon2KeyLength  = 1024
)

// Argon2Params defines the memory and CPU cost factors for argon2id.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params are used for any parameter left at zero in configuration.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// passwordHasher hashes with the configured algorithm and verifies both
// argon2id (PHC string) and bcrypt hashes by their prefix.
type passwordHasher struct {
	algorithm  string
	bcryptCost int
	argon2     Argon2Params
}

// NewPasswordHasher builds the hasher from configuration.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	h := &passwordHasher{
		algorithm:  config.PasswordAlgorithmArgon2id,
		bcryptCost: bcrypt.DefaultCost,
		argon2:     DefaultArgon2Params,
	}
	if cfg == nil || cfg.Auth == nil {
		return h
	}

	if cfg.Auth.PasswordAlgorithm != "" {
		h.algorithm = cfg.Auth.PasswordAlgorithm
	}
	if cfg.Auth.BcryptCost > 0 {
		h.bcryptCost = cfg.Auth.BcryptCost
	}
	h.argon2 = mergeArgon2Params(cfg.Auth.Argon2)

	return h
}

// NewBcryptHasherWithCost returns a hasher producing bcrypt hashes with the given cost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &passwordHasher{
		algorithm:  config.PasswordAlgorithmBcrypt,
		bcryptCost: cost,
		argon2:     DefaultArgon2Params,
	}
}

// NewArgon2Hasher returns a hasher producing argon2id hashes with the given parameters.
func NewArgon2Hasher(params Argon2Params) service.PasswordHasher {
	return &passwordHasher{
		algorithm:  config.PasswordAlgorithmArgon2id,
		bcryptCost: bcrypt.DefaultCost,
		argon2:     params,
	}
}

func mergeArgon2Params(c config.Argon2Config) Argon2Params {
	p := DefaultArgon2Params
	if c.Memory > 0 {
		p.Memory = c.Memory
	}
	if c.Iterations > 0 {
		p.Iterations = c.Iterations
	}
	if c.Parallelism > 0 {
		p.Parallelism = c.Parallelism
	}
	if c.SaltLength > 0 {
		p.SaltLength = c.SaltLength
	}
	if c.KeyLength > 0 {
		p.KeyLength = c.KeyLength
	}

	return p
}

// Hash generates a salted hash from a plaintext password.
func (h *passwordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	if h.algorithm == config.PasswordAlgorithmBcrypt {
		bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", errors.Wrap(err, "bcrypt")
		}

		return string(bytes), nil
	}

	return h.hashArgon2(password)
}

func (h *passwordHasher) hashArgon2(password string) (string, error) {
	salt := make([]byte, h.argon2.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.argon2.Iterations, h.argon2.Memory, h.argon2.Parallelism, h.argon2.KeyLength)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		h.argon2.Memory,
		h.argon2.Iterations,
		h.argon2.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check compares a plaintext password with a stored hash of either supported algorithm.
func (h *passwordHasher) Check(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, argon2Prefix):
		return checkArgon2(password, hash)
	case isBcryptHash(hash):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	default:
		return false
	}
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func checkArgon2(password, encoded string) bool {
	params, salt, key, err := decodeArgon2(encoded)
	if err != nil {
		return false
	}

	other := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return subtle.ConstantTimeCompare(key, other) == 1
}

// decodeArgon2 parses "$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>".
func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params, nil, nil, errors.New("unexpected number of hash segments")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.Wrap(err, "version")
	}
	if version != argon2.Version {
		return params, nil, nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, errors.Wrap(err, "parameters")
	}
	if params.Memory == 0 || params.Memory > maxArgon2Memory ||
		params.Iterations == 0 || params.Iterations > maxArgon2Iterations ||
		params.Parallelism == 0 {
		return params, nil, nil, errors.New("parameters out of range")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params, nil, nil, errors.New("invalid salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxArgon2KeyLength {
		return params, nil, nil, errors.New("invalid key")
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
