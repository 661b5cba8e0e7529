// Package service contains the application's business logic between the
// HTTP handlers and the repositories.
package service

import (
	"context"
	"strconv"
	"strings"

	"yatube/internal/cache"
	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	pageSize  int
}

// PostFormInput carries the raw form fields of the post create/edit form.
// GroupRaw is the submitted select value and may be empty.
type PostFormInput struct {
	Text     string
	GroupRaw string
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	pageSize int,
) *PostService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		pageSize:  pageSize,
	}
}

// validateForm checks the form fields and resolves the group selection.
// All field problems are collected into a single form error so the form can
// be re-rendered with every message at once.
func (s *PostService) validateForm(ctx context.Context, in PostFormInput) (string, *uint, error) {
	fields := map[string]string{}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		fields["text"] = "Text is required"
	}

	var groupID *uint
	if raw := strings.TrimSpace(in.GroupRaw); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			fields["group"] = "Unknown group"
		} else {
			ok, existsErr := s.groupRepo.ExistsByID(ctx, uint(id))
			if existsErr != nil {
				return "", nil, existsErr
			}
			if !ok {
				fields["group"] = "Unknown group"
			} else {
				v := uint(id)
				groupID = &v
			}
		}
	}

	if len(fields) > 0 {
		return "", nil, models.NewFormError(fields)
	}
	return text, groupID, nil
}

// CreatePost validates the form and stores a new post owned by authorID.
// Nothing is written when validation fails.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostFormInput) (*models.Post, error) {
	text, groupID, err := s.validateForm(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()
	return post, nil
}

// EditPost validates the form and updates an existing post. Only the author
// may edit; the author and creation time never change.
func (s *PostService) EditPost(ctx context.Context, postID, editorID uint, in PostFormInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return nil, models.NewForbiddenError("Only the author can edit a post")
	}

	text, groupID, err := s.validateForm(ctx, in)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsEdited.Inc()
	return s.postRepo.GetByID(ctx, postID)
}

// GetPost returns a single post with its author and group loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// indexPage is the cached shape of the front page listing.
type indexPage struct {
	Posts []*models.Post `json:"posts"`
	Total int64          `json:"total"`
}

// IndexPage returns one page of the site-wide post feed, newest first.
// The first page is the hottest path and is served through the cache.
func (s *PostService) IndexPage(ctx context.Context, number int) (pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]

	if number <= 1 {
		var cached indexPage
		err := cache.Aside(ctx, cache.IndexFirstPage, &cached, cache.IndexPageTTL, func() error {
			total, err := s.postRepo.CountAll(ctx)
			if err != nil {
				return err
			}
			posts, err := s.postRepo.ListPage(ctx, s.pageSize, 0)
			if err != nil {
				return err
			}
			cached = indexPage{Posts: posts, Total: total}
			return nil
		})
		if err != nil {
			return page, err
		}
		return pagination.New(cached.Posts, 1, s.pageSize, cached.Total), nil
	}

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return page, err
	}
	number = pagination.Clamp(number, pagination.TotalPages(total, s.pageSize))
	if number == 1 {
		return s.IndexPage(ctx, 1)
	}
	posts, err := s.postRepo.ListPage(ctx, s.pageSize, pagination.Offset(number, s.pageSize))
	if err != nil {
		return page, err
	}
	return pagination.New(posts, number, s.pageSize, total), nil
}

// GroupPage returns the group with the given slug and one page of its posts.
func (s *PostService) GroupPage(ctx context.Context, slug string, number int) (*models.Group, pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, page, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, page, err
	}
	number = pagination.Clamp(number, pagination.TotalPages(total, s.pageSize))
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, s.pageSize, pagination.Offset(number, s.pageSize))
	if err != nil {
		return nil, page, err
	}
	return group, pagination.New(posts, number, s.pageSize, total), nil
}

// ProfilePage returns the author with the given username and one page of
// their posts. Page.TotalItems doubles as the author's post count.
func (s *PostService) ProfilePage(ctx context.Context, username string, number int) (*models.User, pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, page, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, page, err
	}
	number = pagination.Clamp(number, pagination.TotalPages(total, s.pageSize))
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, s.pageSize, pagination.Offset(number, s.pageSize))
	if err != nil {
		return nil, page, err
	}
	return author, pagination.New(posts, number, s.pageSize, total), nil
}

// Groups lists every group for the post form's select box.
func (s *PostService) Groups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}
