package server

import (
	"fmt"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// postListTTL bounds how stale a cached post-list page may be.
const postListTTL = 5 * time.Second

type postListResponse struct {
	Posts   []*models.Post `json:"posts"`
	HasMore bool           `json:"hasMore"`
	Total   int64          `json:"total"`
}

// CreatePost handles POST /post. The body is multipart; the cover file
// arrives in the optional "files" field.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	title := c.FormValue("title")
	summary := c.FormValue("summary")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	cover := ""
	if fh, err := c.FormFile("files"); err == nil {
		cover, err = s.uploads.Save(fh)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	post := &models.Post{
		Title:   title,
		Summary: summary,
		Content: content,
		Cover:   cover,
		Author:  ident.Username,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	created, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListPosts handles GET /post?page&limit
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 3)
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 3
	}

	var resp postListResponse
	key := fmt.Sprintf("postlist:%d:%d", page, limit)
	err := cache.CacheAside(ctx, key, &resp, postListTTL, func() error {
		posts, total, err := s.posts.List(ctx, page, limit)
		if err != nil {
			return err
		}
		resp = postListResponse{
			Posts:   posts,
			HasMore: total > int64(page*limit+len(posts)),
			Total:   total,
		}
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(resp)
}

// GetPost handles GET /post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.posts.GetByID(ctx, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /post/:id (multipart, author only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.posts.GetByID(ctx, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if !authz.CanModifyPost(post, ident) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own posts"))
	}

	if title := c.FormValue("title"); title != "" {
		post.Title = title
	}
	if summary := c.FormValue("summary"); summary != "" {
		post.Summary = summary
	}
	if content := c.FormValue("content"); content != "" {
		post.Content = content
	}

	// The cover always reflects this update: the new file's path, or empty
	// when the update carries no file.
	post.Cover = ""
	if fh, ferr := c.FormFile("files"); ferr == nil {
		cover, serr := s.uploads.Save(fh)
		if serr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(serr))
		}
		post.Cover = cover
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(updated)
}

// DeletePost handles DELETE /post/:id (author only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.posts.GetByID(ctx, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if !authz.CanModifyPost(post, ident) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own posts"))
	}

	if err := s.posts.Delete(ctx, uint(id)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}

// ToggleLike handles POST /post/:id/like. One conditional branch flips the
// caller's membership in the like set; the response reports the resulting
// state. The read-then-write is not guarded against a concurrent toggle from
// the same user.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}
	postID := uint(id)

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	liked, err := s.posts.Liked(ctx, ident.ID, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if liked {
		err = s.posts.Unlike(ctx, ident.ID, postID)
	} else {
		err = s.posts.Like(ctx, ident.ID, postID)
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	count, err := s.posts.LikeCount(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"likesCount": count,
		"liked":      !liked,
	})
}
