package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestParseOptionalInt(t *testing.T) {
	assert.Nil(t, ParseOptionalInt(""))
	assert.Nil(t, ParseOptionalInt("nineteen"))
	got := ParseOptionalInt("1999")
	require.NotNil(t, got)
	assert.Equal(t, 1999, *got)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Great film", SanitizeText("<b>Great</b> film"))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "Tom & Jerry", SanitizeText("  Tom & Jerry "))
	assert.Nil(t, SanitizeTextPtr(nil))

	in := "<i>x</i>"
	assert.Equal(t, "x", *SanitizeTextPtr(&in))
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)

	id := uuid.New()
	ctx = SetUserContext(ctx, id, "moderator")
	ctx = SetTokenContext(ctx, "tok")

	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "moderator", role)

	token, ok := GetTokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "yamdb-test")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "reviews")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATING_CACHE_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "yamdb-test", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "reviews", cfg.Database.Name)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 24, cfg.Session.ExpiryHours)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 60.0, cfg.Redis.RatingTTL.Seconds())
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
}
