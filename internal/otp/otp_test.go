package otp

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("123456", 6))
	assert.True(t, ValidFormat("000000", 6))
	assert.False(t, ValidFormat("12345", 6))
	assert.False(t, ValidFormat("1234567", 6))
	assert.False(t, ValidFormat("12a456", 6))
	assert.False(t, ValidFormat("", 6))
}

func TestStaticVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("no pending challenge", func(t *testing.T) {
		v := NewStaticVerifier("123456", time.Minute)

		verdict, err := v.Verify(ctx, "user-1", "123456")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
	})

	t.Run("issued challenge accepts the demo code once", func(t *testing.T) {
		v := NewStaticVerifier("123456", time.Minute)

		issued, err := v.Issue(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "123456", issued)

		for _, code := range []string{"654321", "000000", "123457"} {
			verdict, err := v.Verify(ctx, "user-1", code)
			assert.NoError(t, err)
			assert.Equal(t, Rejected, verdict, code)
		}

		verdict, err := v.Verify(ctx, "user-1", "123456")
		assert.NoError(t, err)
		assert.Equal(t, Accepted, verdict)

		verdict, err = v.Verify(ctx, "user-1", "123456")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
	})

	t.Run("challenges are per subject", func(t *testing.T) {
		v := NewStaticVerifier("123456", time.Minute)
		_, err := v.Issue(ctx, "user-1")
		require.NoError(t, err)

		verdict, err := v.Verify(ctx, "user-2", "123456")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
	})

	t.Run("expired challenge", func(t *testing.T) {
		now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		v := NewStaticVerifier("123456", 5*time.Minute)
		v.now = func() time.Time { return now }

		_, err := v.Issue(ctx, "user-1")
		require.NoError(t, err)

		now = now.Add(5 * time.Minute)
		verdict, err := v.Verify(ctx, "user-1", "123456")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
	})
}

func TestRedisVerifier(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	v := NewRedisVerifier(client, 6, 5*time.Minute, "otp:")
	v.generate = func(int) (string, error) { return "424242", nil }

	t.Run("issue stores code with ttl", func(t *testing.T) {
		mock.ExpectSet("otp:user-1", "424242", 5*time.Minute).SetVal("OK")

		code, err := v.Issue(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "424242", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matching code is accepted and consumed", func(t *testing.T) {
		mock.ExpectGet("otp:user-1").SetVal("424242")
		mock.ExpectDel("otp:user-1").SetVal(1)

		verdict, err := v.Verify(ctx, "user-1", "424242")
		assert.NoError(t, err)
		assert.Equal(t, Accepted, verdict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		mock.ExpectGet("otp:user-1").SetVal("424242")

		verdict, err := v.Verify(ctx, "user-1", "111111")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		mock.ExpectGet("otp:user-2").RedisNil()

		verdict, err := v.Verify(ctx, "user-2", "424242")
		assert.NoError(t, err)
		assert.Equal(t, Rejected, verdict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGenerateCode(t *testing.T) {
	code, err := generateCode(6)
	require.NoError(t, err)
	assert.True(t, ValidFormat(code, 6))
}
