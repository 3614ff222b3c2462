package service

import (
	"context"

	"bloggy/internal/models"
)

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByIDWithCountsFn func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	getByVerifyTokenFn  func(context.Context, string) (*models.User, error)
	getByResetTokenFn   func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithCounts(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithCountsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	return s.getByVerifyTokenFn(ctx, token)
}
func (s *userRepoStub) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.getByResetTokenFn(ctx, token)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByIDWithCountsFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByVerifyTokenFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByResetTokenFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
	}
}

type followRepoStub struct {
	createFn    func(context.Context, uint, uint) (bool, error)
	deleteFn    func(context.Context, uint, uint) (bool, error)
	existsFn    func(context.Context, uint, uint) (bool, error)
	followersFn func(context.Context, uint) ([]models.User, error)
	followingFn func(context.Context, uint) ([]models.User, error)
	countsFn    func(context.Context, uint) (int64, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		deleteFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countsFn:    func(context.Context, uint) (int64, int64, error) { return 0, 0, nil },
	}
}

type blogRepoStub struct {
	createFn      func(context.Context, *models.Blog) error
	getByIDFn     func(context.Context, uint, uint) (*models.Blog, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Blog, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Blog, error)
	existsFn      func(context.Context, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) (bool, error)
	unlikeFn      func(context.Context, uint, uint) (bool, error)
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	countLikesFn  func(context.Context, uint) (int64, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *blogRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *blogRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *blogRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *blogRepoStub) Like(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.likeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) Unlike(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, blogID)
}
func (s *blogRepoStub) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	return s.countLikesFn(ctx, blogID)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn: func(context.Context, *models.Blog) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Blog, error) {
			return &models.Blog{ID: id}, nil
		},
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Blog, error) { return nil, nil },
		listFn:        func(context.Context, int, int, uint) ([]*models.Blog, error) { return nil, nil },
		existsFn:      func(context.Context, uint) (bool, error) { return true, nil },
		likeFn:        func(context.Context, uint, uint) (bool, error) { return true, nil },
		unlikeFn:      func(context.Context, uint, uint) (bool, error) { return true, nil },
		isLikedFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		countLikesFn:  func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByBlogIDFn func(context.Context, uint, int, int) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByBlogID(ctx context.Context, blogID uint, limit, offset int) ([]models.Comment, error) {
	return s.getByBlogIDFn(ctx, blogID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		getByBlogIDFn: func(context.Context, uint, int, int) ([]models.Comment, error) { return nil, nil },
	}
}

// errorCodeOf extracts the AppError code from err, or empty string.
func errorCodeOf(err error) string {
	if appErr, ok := err.(*models.AppError); ok {
		return appErr.Code
	}
	return ""
}
