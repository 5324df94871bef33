package seed

import (
	"fmt"
	"log"

	"creationity/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumItems    int
	ShouldClean bool
}

// Seed populates the database with the curated fixtures plus randomized
// users, content, and likes.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumItems <= 0 {
		opts.NumItems = 50
	}

	log.Printf("Seeding database with %d users and %d content items...", opts.NumUsers, opts.NumItems)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		users = append(users, user)
	}

	// Curated fixtures first so fresh installs always have browseable content.
	items := make([]*models.ContentItem, 0, len(Fixtures)+opts.NumItems)
	for i, fx := range Fixtures {
		items = append(items, &models.ContentItem{
			Type:     fx.Type,
			Title:    fx.Title,
			Content:  fx.Content,
			Category: fx.Category,
			Tags:     fx.Tags,
			UserID:   users[i%len(users)].ID,
		})
	}

	for i := 0; i < opts.NumItems; i++ {
		author := users[f.rng.Intn(len(users))]
		contentType := models.ContentTypes[f.rng.Intn(len(models.ContentTypes))]
		items = append(items, f.BuildContentItem(author, contentType))
	}

	if err := f.CreateContentBatch(items); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}

	// Random likes, roughly two per item.
	for _, item := range items {
		for j := 0; j < f.rng.Intn(4); j++ {
			liker := users[f.rng.Intn(len(users))]
			if err := f.CreateLike(liker.ID, item.ID); err != nil {
				return fmt.Errorf("seed likes: %w", err)
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d content items", len(users), len(items))
	return nil
}

// SeedFixturesOnly inserts just the curated fixtures under a single system
// user. Used by the runtime bootstrap when a fresh database is detected.
func SeedFixturesOnly(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ContentItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	f := NewFactory(db)
	system, err := f.CreateUser(func(u *models.User) {
		u.Username = "creationity"
		u.Email = "hello@creationity.app"
		u.Bio = "Official starter content"
	})
	if err != nil {
		return err
	}

	items := make([]*models.ContentItem, 0, len(Fixtures))
	for _, fx := range Fixtures {
		items = append(items, &models.ContentItem{
			Type:     fx.Type,
			Title:    fx.Title,
			Content:  fx.Content,
			Category: fx.Category,
			Tags:     fx.Tags,
			UserID:   system.ID,
		})
	}
	return f.CreateContentBatch(items)
}

func clearData(db *gorm.DB) error {
	// Order matters: likes reference content and users.
	for _, table := range []string{"likes", "content_items", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
