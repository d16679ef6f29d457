package service

import (
	"context"

	"cookbook/internal/models"
	"cookbook/internal/observability"
	"cookbook/internal/repository"
	"cookbook/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
}

type CreateCommentInput struct {
	UserID   uint
	RecipeID uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	recipeRepo repository.RecipeRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID, 0); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.UserID,
		RecipeID: in.RecipeID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreatedTotal.Inc()

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, recipeID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByRecipe(ctx, recipeID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
