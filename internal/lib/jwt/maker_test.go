package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		userUID  string
		username string
		isAdmin  bool
	}{
		{
			name:     "admin user",
			userUID:  "550e8400-e29b-41d4-a716-446655440000",
			username: "adminuser",
			isAdmin:  true,
		},
		{
			name:     "regular user",
			userUID:  "550e8400-e29b-41d4-a716-446655440001",
			username: "regularuser",
			isAdmin:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.username, tt.isAdmin)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.isAdmin, claims.IsAdmin)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Minute)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidCases(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	t.Run("чужой секретный ключ", func(t *testing.T) {
		other := NewJWTMaker("another_secret_key", 15*time.Minute)
		token, err := other.GenerateToken("uid", "user", false)
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("истекший токен", func(t *testing.T) {
		expired := NewJWTMaker("test_secret_key_1234567890", -time.Minute)
		token, err := expired.GenerateToken("uid", "user", false)
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := maker.ParseToken("not-a-token")
		assert.Error(t, err)
	})
}
