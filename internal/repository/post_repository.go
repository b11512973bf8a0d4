package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

// SortKey selects the listing order. Unknown values fall back to SortNewest.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "title_asc"
	SortTitleDesc SortKey = "title_desc"
)

func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.TrimSpace(raw)) {
	case SortOldest:
		return SortOldest
	case SortTitleAsc:
		return SortTitleAsc
	case SortTitleDesc:
		return SortTitleDesc
	default:
		return SortNewest
	}
}

// orderClause appends id as a secondary key so equal primary values come
// back in a stable order.
func (k SortKey) orderClause() string {
	switch k {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortTitleAsc:
		return "title ASC, id ASC"
	case SortTitleDesc:
		return "title DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// List recomputes the filtered, ordered listing on every call. A non-empty
// search matches title, content or author as a case-insensitive substring;
// author carries the owning account's username.
func (r *PostRepository) List(search string, sort SortKey) ([]model.Post, error) {
	query := r.db.Model(&model.Post{})

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}

	var posts []model.Post
	if err := query.Order(sort.orderClause()).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ListByAccountID(accountID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("account_id = ?", accountID).Order("created_at DESC, id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts by account failed: %w", err)
	}
	return posts, nil
}

// UpdateContent replaces title and content only; id and created_at never
// change after insert.
func (r *PostRepository) UpdateContent(id uint, title, content string) error {
	err := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error
	if err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// Lengths projects the character length of title + content for every post.
// MySQL's LENGTH counts bytes, so CHAR_LENGTH is used there; sqlite's LENGTH
// already counts characters for text.
func (r *PostRepository) Lengths() ([]int, error) {
	expr := "CHAR_LENGTH(title) + CHAR_LENGTH(content)"
	if r.db.Dialector.Name() == "sqlite" {
		expr = "LENGTH(title) + LENGTH(content)"
	}

	var lengths []int
	if err := r.db.Model(&model.Post{}).Pluck(expr, &lengths).Error; err != nil {
		return nil, fmt.Errorf("query post lengths failed: %w", err)
	}
	return lengths, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text.
// '!' is the escape character because, unlike a backslash, it needs no
// literal quoting of its own in either MySQL or sqlite.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "!", "!!")
	s = strings.ReplaceAll(s, "%", "!%")
	s = strings.ReplaceAll(s, "_", "!_")
	return s
}
