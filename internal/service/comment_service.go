package service

import (
	"context"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
)

type CommentInput struct {
	Text string `validate:"notblank"`
}

type CommentService struct {
	repo  *database.CommentRepository
	posts *database.PostRepository
}

func NewCommentService(repo *database.CommentRepository, posts *database.PostRepository) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

func (s *CommentService) AddComment(ctx context.Context, authorID, postID uint64, text string) (*model.Comment, error) {
	if authorID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	if err := pkg.Validate(CommentInput{Text: text}); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   &post.ID,
		AuthorID: &authorID,
		Text:     text,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint64) ([]model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}
