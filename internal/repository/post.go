package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, page, limit int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Liked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.annotate(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts, newest first, with the total post count.
// page is zero-based; skip = page*limit.
func (r *postRepository) List(ctx context.Context, page, limit int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	for _, post := range posts {
		if err := r.annotate(ctx, post); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post together with its comments and likes. Orphaned
// comments are unreachable through the API once the post is gone, so they are
// cascaded rather than left behind.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Liked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// annotate fills the computed fields: liker IDs and comment count.
func (r *postRepository) annotate(ctx context.Context, post *models.Post) error {
	likes := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", post.ID).
		Order("id").
		Pluck("user_id", &likes).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	post.Likes = likes
	post.LikesCount = len(likes)

	err = r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", post.ID).
		Count(&post.CommentCount).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
