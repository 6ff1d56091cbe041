// Package authz holds the ownership predicates applied before mutating posts
// and comments. The predicates are pure: no I/O, exact case-sensitive
// username comparison, no normalization.
package authz

import (
	"inkwell/internal/auth"
	"inkwell/internal/models"
)

// CanModifyPost reports whether ident may update or delete the post.
func CanModifyPost(post *models.Post, ident auth.Identity) bool {
	return ident.Username == post.Author
}

// CanEditComment reports whether ident may edit the comment. Only the
// comment's writer may; the post owner may remove a comment but not edit it.
func CanEditComment(comment *models.Comment, ident auth.Identity) bool {
	return ident.Username == comment.Author
}

// CanDeleteComment reports whether ident may delete the comment: either the
// comment's writer or the owner of the hosting post.
func CanDeleteComment(comment *models.Comment, parentPost *models.Post, ident auth.Identity) bool {
	return ident.Username == comment.Author || ident.Username == parentPost.Author
}
