// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"bloggy/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:        gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		Bio:             gofakeit.Sentence(10),
		ProfileImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsVerified:      true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildBlog constructs a blog struct without persisting it. Useful for batching.
func (f *Factory) BuildBlog(user *models.User, overrides ...func(*models.Blog)) *models.Blog {
	blog := &models.Blog{
		Title:         gofakeit.Sentence(5),
		Body:          gofakeit.Paragraph(3, 5, 8, "\n\n"),
		CoverImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		UserID:        user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	blog.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(blog)
	}
	return blog
}

// CreateBlogsBatch persists multiple blogs in a single DB call.
func (f *Factory) CreateBlogsBatch(blogs []*models.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	return f.db.Create(&blogs).Error
}

// CreateComment persists a comment from the user on the blog.
func (f *Factory) CreateComment(user *models.User, blog *models.Blog) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(gofakeit.Number(5, 20)),
		BlogID:  blog.ID,
		UserID:  user.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
