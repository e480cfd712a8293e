package auth

import (
	"strings"
	"testing"

	"accounts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testArgon2Params = Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestArgon2Hasher_HashAndCheck(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, hash, "secret1")

	assert.True(t, hasher.Check("secret1", hash))
	assert.False(t, hasher.Check("secret2", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestArgon2Hasher_SaltsEveryHash(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params)

	first, err := hasher.Hash("Test_Password1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Test_Password1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Test_Password1!", first))
	assert.True(t, hasher.Check("Test_Password1!", second))
}

func TestArgon2Hasher_AcceptsLongPasswords(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params)
	long := strings.Repeat("p", 500)

	hash, err := hasher.Hash(long)
	require.NoError(t, err)
	assert.True(t, hasher.Check(long, hash))
	assert.False(t, hasher.Check(long[:499], hash))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Check("StrongPass123!", hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
}

func TestHasher_VerifiesBothAlgorithms(t *testing.T) {
	argonHasher := NewArgon2Hasher(testArgon2Params)
	bcryptHasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	argonHash, err := argonHasher.Hash("secret1")
	require.NoError(t, err)
	bcryptHash, err := bcryptHasher.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, argonHasher.Check("secret1", bcryptHash))
	assert.True(t, bcryptHasher.Check("secret1", argonHash))
}

func TestHasher_MalformedHashesNeverMatch(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params)

	malformed := []string{
		"",
		"invalid_hash",
		"plaintext-secret1",
		"$argon2id$",
		"$argon2id$v=19$m=1024,t=1,p=1$onlysalt",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0$a2V5",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdHNhbHRzYWx0$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$",
		"$2a$10$short",
	}

	for _, stored := range malformed {
		assert.NotPanics(t, func() {
			assert.False(t, hasher.Check("secret1", stored), "stored=%q", stored)
		})
	}
}

func TestHasher_RejectsEmptyPassword(t *testing.T) {
	_, err := NewArgon2Hasher(testArgon2Params).Hash("")
	assert.Error(t, err)

	_, err = NewBcryptHasherWithCost(bcrypt.MinCost).Hash("")
	assert.Error(t, err)
}

func TestNewPasswordHasher_FromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			PasswordAlgorithm: config.PasswordAlgorithmBcrypt,
			BcryptCost:        bcrypt.MinCost,
		},
	}

	hash, err := NewPasswordHasher(cfg).Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))

	cfg.Auth.PasswordAlgorithm = config.PasswordAlgorithmArgon2id
	cfg.Auth.Argon2 = config.Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1}

	hash, err = NewPasswordHasher(cfg).Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
}
