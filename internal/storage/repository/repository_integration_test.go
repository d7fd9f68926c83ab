package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrxception/ofmreddit/internal/models"
)

func TestStorage_GetSiteControls_LazyCreate(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("первое чтение создает строку с дефолтами", func(t *testing.T) {
		controls, err := storage.GetSiteControls(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, controls.ID)
		assert.Equal(t, 1, controls.ShowSub)
		assert.Equal(t, "30", controls.DefaultCooldown)
		assert.Equal(t, 1, controls.Revision)
	})

	t.Run("повторное чтение идемпотентно", func(t *testing.T) {
		controls, err := storage.GetSiteControls(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, controls.Revision)

		var count int
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM site_controls").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("частичное обновление увеличивает ревизию", func(t *testing.T) {
		cooldown := "10"
		err := storage.UpdateSiteControls(ctx, nil, &cooldown)
		require.NoError(t, err)

		controls, err := storage.GetSiteControls(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10", controls.DefaultCooldown)
		assert.Equal(t, 1, controls.ShowSub, "нетронутое поле не меняется")
		assert.Equal(t, 2, controls.Revision)
	})
}

func TestStorage_UpsertLatestEntry(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	userUID := factory.CreateUser(t, GetTestUserEmail(), "upsertuser", false)
	startsAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("вставка при отсутствии записей", func(t *testing.T) {
		err := storage.UpsertLatestEntry(ctx, models.UserSubscription{
			UserUID:  userUID,
			TierID:   1,
			StartsAt: startsAt,
			Cooldown: "0",
		})
		require.NoError(t, err)
		verify.VerifySubscriptionCount(t, userUID, 1)
	})

	t.Run("повторный апсерт не добавляет строк", func(t *testing.T) {
		err := storage.UpsertLatestEntry(ctx, models.UserSubscription{
			UserUID:  userUID,
			TierID:   2,
			StartsAt: startsAt.AddDate(0, 1, 0),
			Cooldown: "10",
		})
		require.NoError(t, err)
		verify.VerifySubscriptionCount(t, userUID, 1)

		view, err := storage.GetCurrentSubscription(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, 2, view.TierID)
		assert.Equal(t, "10", view.Cooldown)
		assert.Equal(t, "Creator", view.TierName)
	})

	t.Run("при равных starts_at обновляется запись с наибольшим id", func(t *testing.T) {
		other := factory.CreateUser(t, GetTestUserEmail(), "tieuser", false)
		sameStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		factory.CreateSubscription(t, other, 1, sameStart, nil, "0")
		lastID := factory.CreateSubscription(t, other, 1, sameStart, nil, "0")

		err := storage.UpsertLatestEntry(ctx, models.UserSubscription{
			UserUID:  other,
			TierID:   3,
			StartsAt: sameStart,
			Cooldown: "30",
		})
		require.NoError(t, err)
		verify.VerifySubscriptionCount(t, other, 2)

		var tierID int
		err = storage.DB.QueryRow("SELECT tier_id FROM user_subscriptions WHERE id = $1", lastID).Scan(&tierID)
		require.NoError(t, err)
		assert.Equal(t, 3, tierID)
	})
}

func TestStorage_InsertEntry_CooldownResolution(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userUID := factory.CreateUser(t, GetTestUserEmail(), "cooldownuser", false)
	startsAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	readCooldown := func(id int) string {
		var cooldown string
		err := storage.DB.QueryRow("SELECT cooldown FROM user_subscriptions WHERE id = $1", id).Scan(&cooldown)
		require.NoError(t, err)
		return cooldown
	}

	t.Run("без строки настроек пустой cooldown получает 30", func(t *testing.T) {
		id, err := storage.InsertEntry(ctx, models.UserSubscription{
			UserUID:  userUID,
			TierID:   1,
			StartsAt: startsAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "30", readCooldown(id))
	})

	t.Run("пустой cooldown берется из настроек на момент вставки", func(t *testing.T) {
		_, err := storage.GetSiteControls(ctx)
		require.NoError(t, err)
		cooldown := "10"
		require.NoError(t, storage.UpdateSiteControls(ctx, nil, &cooldown))

		id, err := storage.InsertEntry(ctx, models.UserSubscription{
			UserUID:  userUID,
			TierID:   1,
			StartsAt: startsAt.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, "10", readCooldown(id))
	})

	t.Run("явный cooldown не переопределяется", func(t *testing.T) {
		id, err := storage.InsertEntry(ctx, models.UserSubscription{
			UserUID:  userUID,
			TierID:   1,
			StartsAt: startsAt.AddDate(0, 0, 2),
			Cooldown: "0",
		})
		require.NoError(t, err)
		assert.Equal(t, "0", readCooldown(id))
	})
}

func TestStorage_Bans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userUID := factory.CreateUser(t, GetTestUserEmail(), "banme", false)

	t.Run("блокировка и чтение причины", func(t *testing.T) {
		require.NoError(t, storage.UpsertBan(ctx, userUID, "spam"))

		ban, err := storage.GetBan(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, "spam", ban.Reason)
	})

	t.Run("повторная блокировка обновляет причину", func(t *testing.T) {
		require.NoError(t, storage.UpsertBan(ctx, userUID, "abuse"))

		ban, err := storage.GetBan(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, "abuse", ban.Reason)

		var count int
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM banned_users WHERE user_uid = $1", userUID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("снятие блокировки", func(t *testing.T) {
		affected, err := storage.RemoveBan(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, 1, affected)

		_, err = storage.GetBan(ctx, userUID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	uid := factory.CreateUser(t, GetTestUserEmail(), "listuser", false)
	factory.CreateSubscription(t, uid, 2, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil, "0")
	require.NoError(t, storage.UpsertBan(ctx, uid, "test reason"))

	users, err := storage.ListUsers(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, "listuser", users[0].Username)
	assert.True(t, users[0].Banned)
	require.NotNil(t, users[0].BanReason)
	assert.Equal(t, "test reason", *users[0].BanReason)
	require.NotNil(t, users[0].TierName)
	assert.Equal(t, "Creator", *users[0].TierName)
}

func TestStorage_Prompts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("апсерт создает промпт с документами", func(t *testing.T) {
		docs := []models.PromptDocument{
			{Name: "guide", URL: "https://example.com/guide.pdf"},
		}
		require.NoError(t, storage.UpsertPrompt(ctx, "caption_generation", "Write captions for {subreddit}", docs))

		prompt, err := storage.GetPrompt(ctx, "caption_generation")
		require.NoError(t, err)
		assert.Equal(t, "Write captions for {subreddit}", prompt.Content)
		require.Len(t, prompt.Documents, 1)
		assert.Equal(t, "guide", prompt.Documents[0].Name)
	})

	t.Run("повторный апсерт заменяет документы целиком", func(t *testing.T) {
		docs := []models.PromptDocument{
			{Name: "styleguide", URL: "https://example.com/style.pdf"},
			{Name: "examples", URL: "https://example.com/examples.pdf"},
		}
		require.NoError(t, storage.UpsertPrompt(ctx, "caption_generation", "Updated template", docs))

		prompt, err := storage.GetPrompt(ctx, "caption_generation")
		require.NoError(t, err)
		assert.Equal(t, "Updated template", prompt.Content)
		require.Len(t, prompt.Documents, 2)
	})

	t.Run("неизвестный ключ возвращает ErrNotFound", func(t *testing.T) {
		_, err := storage.GetPrompt(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
