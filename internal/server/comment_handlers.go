package server

import (
	"inkwell/internal/authz"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	var req struct {
		PostID  uint   `json:"postId"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	// A comment must reference an existing post at creation time.
	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		Content: req.Content,
		Author:  ident.Username,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments handles GET /comment/:postId
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	comments, err := s.comments.ListByPost(ctx, uint(postID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(comments)
}

// UpdateComment handles PUT /comment/:id (comment author only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.comments.GetByID(ctx, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if !authz.CanEditComment(comment, ident) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own comments"))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	comment.Content = req.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /comment/:id (comment author or post owner)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	ident, _ := middleware.Identity(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.comments.GetByID(ctx, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	post, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if !authz.CanDeleteComment(comment, post, ident) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You cannot delete this comment"))
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}
