package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"creationity/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seeding and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a gofakeit identity. All seeded users share
// the password "Password123" so seeded accounts are usable in development.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(gofakeit.Username())
	user := &models.User{
		Username: fmt.Sprintf("%s%d", username, f.rng.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Bio:      gofakeit.Sentence(8),
		Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildContentItem constructs a random content item for the given author
// without persisting it.
func (f *Factory) BuildContentItem(user *models.User, contentType string) *models.ContentItem {
	categories := Categories[contentType]
	item := &models.ContentItem{
		Type:     contentType,
		Title:    gofakeit.Sentence(4),
		Category: categories[f.rng.Intn(len(categories))],
		Tags:     models.StringList{gofakeit.Word(), gofakeit.Word()},
		UserID:   user.ID,
		Views:    uint64(f.rng.Intn(500)),
	}

	switch contentType {
	case models.TypeJoke, models.TypePickupLine:
		item.Content = gofakeit.Sentence(12)
	case models.TypePoem:
		lines := make([]string, 4+f.rng.Intn(4))
		for i := range lines {
			lines[i] = gofakeit.Sentence(5)
		}
		item.Content = strings.Join(lines, "\n")
	default:
		item.Content = gofakeit.Paragraph(2, 4, 8, "\n\n")
	}

	// Spread created_at over the last 90 days so feeds look lived-in.
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	item.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	return item
}

// CreateContentBatch persists multiple content items in a single call.
func (f *Factory) CreateContentBatch(items []*models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	return f.db.Create(&items).Error
}

// CreateLike persists a like, ignoring duplicate pairs.
func (f *Factory) CreateLike(userID, contentID uint) error {
	like := &models.Like{UserID: userID, ContentID: contentID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}
