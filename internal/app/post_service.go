package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"gopherblog/internal/model"
	"gopherblog/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not the owner of this post")
)

// PostStore is the slice of the post repository the post service needs.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	List(search string, sort repository.SortKey) ([]model.Post, error)
	ListByAccountID(accountID uint) ([]model.Post, error)
	UpdateContent(id uint, title, content string) error
	Delete(id uint) error
}

// ActivityPublisher enqueues lifecycle events for the activity worker.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

type PostService struct {
	posts      PostStore
	publisher  ActivityPublisher
	statsCache StatsCache
}

type ListQuery struct {
	Search string
	Sort   repository.SortKey
}

type CreatePostInput struct {
	AccountID uint
	Username  string
	Title     string
	Content   string
}

type EditPostInput struct {
	AccountID uint
	PostID    uint
	Title     string
	Content   string
}

func NewPostService(posts PostStore, publisher ActivityPublisher, statsCache StatsCache) *PostService {
	return &PostService{
		posts:      posts,
		publisher:  publisher,
		statsCache: statsCache,
	}
}

// List recomputes the filtered, ordered listing on every call. An empty
// result is a valid outcome, not an error.
func (s *PostService) List(query ListQuery) ([]model.Post, error) {
	posts, err := s.posts.List(query.Search, query.Sort)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (s *PostService) Get(postID uint) (*model.Post, error) {
	if postID == 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetOwned fetches a post and enforces that accountID owns it. Used by the
// edit form so a non-owner is refused before seeing editable content.
func (s *PostService) GetOwned(accountID, postID uint) (*model.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}
	if post.AccountID != accountID {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *PostService) Create(input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if input.AccountID == 0 || input.Username == "" || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		Title:     title,
		Content:   content,
		Author:    input.Username,
		AccountID: input.AccountID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.recordActivity(post, model.ActivityPostCreated)
	return post, nil
}

// Edit replaces title and content in place; identifier and creation
// timestamp are immutable. Concurrent edits race last-write-wins at the
// storage layer.
func (s *PostService) Edit(input EditPostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if input.AccountID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.GetOwned(input.AccountID, input.PostID)
	if err != nil {
		return nil, err
	}

	if err := s.posts.UpdateContent(post.ID, title, content); err != nil {
		return nil, err
	}
	post.Title = title
	post.Content = content

	s.invalidateStats()
	s.recordActivity(post, model.ActivityPostEdited)
	return post, nil
}

func (s *PostService) Delete(accountID, postID uint) error {
	if accountID == 0 {
		return ErrInvalidInput
	}

	post, err := s.GetOwned(accountID, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(post.ID); err != nil {
		return err
	}

	s.invalidateStats()
	s.recordActivity(post, model.ActivityPostDeleted)
	return nil
}

func (s *PostService) ListByAccount(accountID uint) ([]model.Post, error) {
	if accountID == 0 {
		return nil, ErrInvalidInput
	}
	posts, err := s.posts.ListByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// recordActivity is best-effort: a broker failure must not fail the post
// operation that already committed.
func (s *PostService) recordActivity(post *model.Post, action string) {
	if s.publisher == nil {
		return
	}
	activity := model.Activity{
		AccountID: post.AccountID,
		PostID:    post.ID,
		Action:    action,
		PostTitle: post.Title,
	}
	if err := s.publisher.Publish(context.Background(), activity); err != nil {
		log.Printf("publish activity failed: %v", err)
	}
}

func (s *PostService) invalidateStats() {
	if s.statsCache == nil {
		return
	}
	ctx := context.Background()
	_ = s.statsCache.MarkDirty(ctx)
	_ = s.statsCache.Delete(ctx)
}
