package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"fanvault/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// CreatorEmail becomes the seeded creator account. Point ADMIN_EMAIL at
	// it to sign in as the creator during development.
	CreatorEmail string
}

// Seed populates the database with demo data: one creator, a mix of
// subscribed and free members, posts with engagement, and a small storefront.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	creator, err := createCreator(f, opts.CreatorEmail)
	if err != nil {
		return fmt.Errorf("failed to create creator: %w", err)
	}

	members, err := createMembers(f, r, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create members: %w", err)
	}
	log.Printf("Created %d members", len(members))

	posts, err := createPosts(f, creator, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := createEngagement(f, r, members, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := createStorefront(f); err != nil {
		return fmt.Errorf("failed to create storefront: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, orders, subscriptions, products, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createCreator(f *Factory, email string) (*models.User, error) {
	if email == "" {
		email = "creator@fanvault.dev"
	}
	return f.CreateUser(func(u *models.User) {
		u.Email = email
		u.Name = "The Creator"
		u.Role = models.RoleCreator
	})
}

func createMembers(f *Factory, r *rand.Rand, count int) ([]*models.User, error) {
	members := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		subscribed := r.Float32() < 0.4
		user, err := f.CreateUser(func(u *models.User) {
			u.IsSubscribed = subscribed
		})
		if err != nil {
			log.Printf("Failed to create member %d: %v", i, err)
			continue
		}

		if subscribed {
			now := time.Now()
			sub := &models.Subscription{
				UserID:     user.ID,
				Plan:       models.PlanMonthly,
				ProviderID: fmt.Sprintf("seed_sub_%s", gofakeit.UUID()),
				StartDate:  now.AddDate(0, 0, -r.Intn(28)),
				EndDate:    now.AddDate(0, 1, 0),
			}
			if err := f.db.Create(sub).Error; err != nil {
				return nil, err
			}
		}

		members = append(members, user)
	}
	return members, nil
}

func createPosts(f *Factory, creator *models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post, err := f.CreatePost(creator)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement adds likes and comments from eligible members. Only
// subscribed members engage so seeded data matches what the API would
// actually accept.
func createEngagement(f *Factory, r *rand.Rand, members []*models.User, posts []*models.Post) error {
	eligible := make([]*models.User, 0, len(members))
	for _, m := range members {
		if m.IsSubscribed {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	likes, comments := 0, 0
	for _, post := range posts {
		// shuffle so each post gets a distinct subset of likers
		r.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})

		numLikes := r.Intn(len(eligible) + 1)
		for _, member := range eligible[:numLikes] {
			if err := f.CreateLike(member, post); err != nil {
				return err
			}
			likes++
		}

		numComments := r.Intn(5)
		for i := 0; i < numComments; i++ {
			member := eligible[r.Intn(len(eligible))]
			if _, err := f.CreateComment(member, post); err != nil {
				return err
			}
			comments++
		}
	}

	log.Printf("Created %d likes and %d comments", likes, comments)
	return nil
}

func createStorefront(f *Factory) error {
	names := []string{
		"Signature Tee", "Logo Hoodie", "Enamel Pin Set", "Poster Print",
		"Sticker Pack", "Tour Cap",
	}
	for i, name := range names {
		_, err := f.CreateProduct(func(p *models.Product) {
			p.Name = name
			// keep one archived item around for the creator catalog view
			p.IsArchived = i == len(names)-1
		})
		if err != nil {
			return err
		}
	}
	log.Printf("Created %d products", len(names))
	return nil
}
