package repository

import (
	"context"
	"sync"
	"testing"

	"fanvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Product{},
		&models.Order{},
		&models.Subscription{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, email string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Email: email, Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID string, public bool) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    userID,
		Text:      "hello world",
		MediaURL:  "https://cdn.example.com/pic.jpg",
		MediaType: models.MediaTypeImage,
		IsPublic:  public,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "u1", "u1@example.com")
	post := createTestPost(t, db, user.ID, true)

	t.Run("first toggle likes", func(t *testing.T) {
		res, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Equal(t, 1, res.Likes)

		count, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		res, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, 0, res.Likes)

		count, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("counter tracks row count across users", func(t *testing.T) {
		other := createTestUser(t, db, "u2", "u2@example.com")
		_, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		res, err := repo.ToggleLike(ctx, other.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Likes)

		count, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(count), int64(res.Likes))
	})

	t.Run("counter never goes negative", func(t *testing.T) {
		drifted := createTestPost(t, db, user.ID, true)
		require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: drifted.ID}).Error)
		// counter drifted below the row count
		require.NoError(t, db.Model(&models.Post{}).Where("id = ?", drifted.ID).Update("likes", 0).Error)

		res, err := repo.ToggleLike(ctx, user.ID, drifted.ID)
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, 0, res.Likes)
	})

	t.Run("missing post returns not found", func(t *testing.T) {
		_, err := repo.ToggleLike(ctx, user.ID, 9999)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostRepository_ToggleLike_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	// in-memory sqlite gives each pooled connection its own database;
	// a single connection also serializes the competing transactions
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "u1", "u1@example.com")
	post := createTestPost(t, db, user.ID, true)

	toggle := func(n int) {
		t.Helper()
		errs := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.ToggleLike(ctx, user.ID, post.ID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
	}

	verify := func(wantRows int64) {
		t.Helper()
		var got models.Post
		require.NoError(t, db.First(&got, post.ID).Error)
		rows, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, wantRows, rows)
		assert.Equal(t, int(wantRows), got.Likes)
	}

	t.Run("even round nets out to zero", func(t *testing.T) {
		toggle(8)
		verify(0)
	})

	t.Run("odd round leaves exactly one like", func(t *testing.T) {
		toggle(7)
		verify(1)
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", "author@example.com")
	viewer := createTestUser(t, db, "viewer", "viewer@example.com")
	post := createTestPost(t, db, author.ID, true)

	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: viewer.ID, Text: "nice"}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: author.ID, Text: "thanks"}).Error)
	_, err := repo.ToggleLike(ctx, viewer.ID, post.ID)
	require.NoError(t, err)

	t.Run("viewer sees liked flag and counts", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CommentsCount)
		assert.Equal(t, 1, got.Likes)
		assert.True(t, got.Liked)
		assert.Equal(t, author.ID, got.User.ID)
		require.Len(t, got.Comments, 2)
		assert.NotEmpty(t, got.Comments[0].User.ID)
	})

	t.Run("anonymous viewer never liked", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, "")
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 4242, viewer.ID)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", "author@example.com")
	first := createTestPost(t, db, author.ID, true)
	second := createTestPost(t, db, author.ID, false)
	// force a stable ordering regardless of insert timestamps
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", first.ID).Update("created_at", "2026-01-01 10:00:00").Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", second.ID).Update("created_at", "2026-01-02 10:00:00").Error)

	posts, err := repo.List(ctx, 20, 0, "")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(ctx, 1, 1, "")
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, first.ID, page[0].ID)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", "author@example.com")
	fan := createTestUser(t, db, "fan", "fan@example.com")
	post := createTestPost(t, db, author.ID, true)

	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: fan.ID, Text: "bye"}).Error)
	_, err := repo.ToggleLike(ctx, fan.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.GetByID(ctx, post.ID, fan.ID)
	require.Error(t, err)

	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
}
