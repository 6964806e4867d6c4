package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(uuid.New(), "operator1", "s3curePassw0rd", "MS-42")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		companyID := uuid.New()
		u, err := NewUser(companyID, "  Operator1 ", "s3curePassw0rd", " MS-42 ")
		require.NoError(t, err)

		assert.Equal(t, companyID, u.CompanyID)
		assert.Equal(t, "operator1", u.Username)
		assert.Equal(t, "MS-42", u.MSCode)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.NotEqual(t, "s3curePassw0rd", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3curePassw0rd"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("rejects empty company id", func(t *testing.T) {
		_, err := NewUser(uuid.Nil, "operator1", "s3curePassw0rd", "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "a", "s3curePassw0rd", "")
		assert.Error(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "operator1", "short", "")
		assert.Error(t, err)
	})
}

func TestSetPassword(t *testing.T) {
	u := newTestUser(t)
	oldHash := u.PasswordHash

	require.NoError(t, u.SetPassword("an0therPassword"))
	assert.NotEqual(t, oldHash, u.PasswordHash)
	assert.True(t, u.VerifyPassword("an0therPassword"))
	assert.False(t, u.VerifyPassword("s3curePassw0rd"))
}

func TestLoginFailureLockout(t *testing.T) {
	u := newTestUser(t)

	locked := u.RecordLoginFailure(3, time.Minute)
	assert.False(t, locked)
	assert.Equal(t, 1, u.FailedAttempts)
	assert.True(t, u.CanLogin())

	u.RecordLoginFailure(3, time.Minute)
	locked = u.RecordLoginFailure(3, time.Minute)
	assert.True(t, locked)
	assert.True(t, u.IsLocked())
	assert.False(t, u.CanLogin())
	assert.NotNil(t, u.LockedUntil)
}

func TestLockExpiry(t *testing.T) {
	u := newTestUser(t)
	u.Lock(-time.Minute)

	// lock window already passed
	assert.False(t, u.IsLocked())
	assert.True(t, u.CanLogin())
}

func TestRecordLoginSuccess(t *testing.T) {
	u := newTestUser(t)
	u.RecordLoginFailure(5, time.Minute)
	u.Lock(time.Hour)

	u.RecordLoginSuccess("10.0.0.1")

	assert.Equal(t, UserStatusActive, u.Status)
	assert.Equal(t, 0, u.FailedAttempts)
	assert.Nil(t, u.LockedUntil)
	assert.Equal(t, "10.0.0.1", u.LastLoginIP)
	assert.NotNil(t, u.LastLoginAt)
}

func TestUnlock(t *testing.T) {
	u := newTestUser(t)

	assert.Error(t, u.Unlock())

	u.Lock(time.Hour)
	require.NoError(t, u.Unlock())
	assert.Equal(t, UserStatusActive, u.Status)
}

func TestDeactivatedCannotLogin(t *testing.T) {
	u := newTestUser(t)
	u.Status = UserStatusDeactivated

	assert.True(t, u.IsDeactivated())
	assert.False(t, u.CanLogin())
}
