package seed

import (
	"testing"

	"fanvault/internal/database"
	"fanvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeed_PopulatesDatabase(t *testing.T) {
	db := setupTestDB(t)

	// ShouldClean uses TRUNCATE ... CASCADE, which sqlite does not support
	err := Seed(db, Options{NumUsers: 10, NumPosts: 5, ShouldClean: false})
	require.NoError(t, err)

	var creator models.User
	require.NoError(t, db.Where("role = ?", models.RoleCreator).First(&creator).Error)
	assert.Equal(t, "creator@fanvault.dev", creator.Email)

	var memberCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleMember).Count(&memberCount)
	assert.Equal(t, int64(10), memberCount)

	var postCount int64
	db.Model(&models.Post{}).Count(&postCount)
	assert.Equal(t, int64(5), postCount)

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	assert.Equal(t, int64(6), productCount)
}

func TestSeed_LikeCounterMatchesRows(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 8, NumPosts: 4, ShouldClean: false}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		var rows int64
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&rows)
		assert.Equal(t, rows, int64(post.Likes), "post %d counter drifted from like rows", post.ID)
	}
}

func TestSeed_SubscribedMembersHaveSubscriptions(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 20, NumPosts: 1, ShouldClean: false}))

	var subscribed []models.User
	require.NoError(t, db.Where("is_subscribed = ?", true).Find(&subscribed).Error)
	for _, user := range subscribed {
		var count int64
		db.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(1), count, "subscribed user %s missing subscription row", user.ID)
	}
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	db := setupTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser(func(u *models.User) {
		u.Email = "pinned@example.com"
		u.Role = models.RoleCreator
	})
	require.NoError(t, err)
	assert.Equal(t, "pinned@example.com", user.Email)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.NotEmpty(t, user.ID)
}
