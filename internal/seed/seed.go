package seed

import (
	"fmt"
	"log"

	"bloggy/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBlogs    int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// Seed populates the database with test data: users, blogs, comments, likes
// and a follow mesh.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d blogs...", opts.NumUsers, opts.NumBlogs)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	blogs := make([]*models.Blog, 0, opts.NumBlogs)
	for i := 0; i < opts.NumBlogs; i++ {
		author := users[f.rand.Intn(len(users))]
		blogs = append(blogs, f.BuildBlog(author))
	}
	if err := f.CreateBlogsBatch(blogs); err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("%d blogs created", len(blogs))

	if err := createComments(f, users, blogs); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	if err := createLikes(f, users, blogs); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	if err := createFollowMesh(f, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Database seeding complete")
	return nil
}

func createComments(f *Factory, users []*models.User, blogs []*models.Blog) error {
	count := 0
	for _, blog := range blogs {
		numComments := f.rand.Intn(6)
		for i := 0; i < numComments; i++ {
			commenter := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, blog); err != nil {
				return err
			}
			count++
		}
	}
	log.Printf("%d comments created", count)
	return nil
}

func createLikes(f *Factory, users []*models.User, blogs []*models.Blog) error {
	count := 0
	for _, blog := range blogs {
		numLikes := f.rand.Intn(len(users) + 1)
		perm := f.rand.Perm(len(users))
		for i := 0; i < numLikes; i++ {
			like := models.Like{UserID: users[perm[i]].ID, BlogID: blog.ID}
			result := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
			if result.Error != nil {
				return result.Error
			}
			count += int(result.RowsAffected)
		}
	}
	log.Printf("%d likes created", count)
	return nil
}

// createFollowMesh gives every user a random set of followees.
func createFollowMesh(f *Factory, users []*models.User) error {
	count := 0
	for _, follower := range users {
		numFollows := f.rand.Intn(len(users))
		perm := f.rand.Perm(len(users))
		for i := 0; i < numFollows; i++ {
			followee := users[perm[i]]
			if followee.ID == follower.ID {
				continue
			}
			follow := models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			result := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
			if result.Error != nil {
				return result.Error
			}
			count += int(result.RowsAffected)
		}
	}
	log.Printf("%d follow edges created", count)
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order; likes/comments/follows reference users and blogs.
	for _, model := range []any{
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Blog{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
