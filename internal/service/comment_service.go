package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/form"
	"github.com/machaira/blog/internal/pagination"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService wraps comment related operations.
type CommentService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// CommentFilter describes filters for the admin comment list.
type CommentFilter struct {
	// Active 为 nil 时不按审核状态筛选。
	Active  *bool
	Created string
	Updated string
	Search  string
	PostID  uint
	Page    string
	PerPage int
}

// CommentListResult 是后台评论列表的一页。
type CommentListResult struct {
	Comments []db.Comment
	Page     pagination.Page
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb, loc: time.UTC, now: time.Now}
}

// WithLocation 设置日期筛选使用的站点时区。
func (s *CommentService) WithLocation(loc *time.Location) *CommentService {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Create 为已发布文章保存一条评论，新评论默认可见。
func (s *CommentService) Create(ctx context.Context, postID uint, input form.CommentForm) (*db.Comment, error) {
	comment := db.Comment{
		PostID: postID,
		Name:   input.Name,
		Email:  input.Email,
		Body:   input.Body,
		Active: true,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListActive 按创建时间正序返回文章的可见评论。
func (s *CommentService) ListActive(ctx context.Context, postID uint) ([]db.Comment, error) {
	comments := []db.Comment{}
	if err := s.db.WithContext(ctx).
		Where("post_id = ? AND active = ?", postID, true).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Get fetches a comment with its post.
func (s *CommentService) Get(ctx context.Context, id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.WithContext(ctx).Preload("Post").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// List 分页返回后台评论列表。
func (s *CommentService) List(ctx context.Context, filter CommentFilter) (*CommentListResult, error) {
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = pagination.AdminPerPage
	}

	var total int64
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Comment{}), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	result := &CommentListResult{
		Comments: []db.Comment{},
		Page:     pagination.New(total, perPage).Page(filter.Page),
	}
	if total == 0 {
		return result, nil
	}

	if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Comment{}), filter).
		Preload("Post").
		Order("comments.created_at asc, comments.id asc").
		Limit(result.Page.Limit()).
		Offset(result.Page.Offset()).
		Find(&result.Comments).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CommentService) applyFilters(query *gorm.DB, filter CommentFilter) *gorm.DB {
	if filter.Active != nil {
		query = query.Where("comments.active = ?", *filter.Active)
	}
	if filter.PostID != 0 {
		query = query.Where("comments.post_id = ?", filter.PostID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(comments.name) LIKE ? ESCAPE '\' OR LOWER(comments.email) LIKE ? ESCAPE '\' OR LOWER(comments.body) LIKE ? ESCAPE '\')`, pattern, pattern, pattern)
	}

	now := s.now()
	if r, ok := ChoiceRange(filter.Created, now, s.loc); ok {
		r = r.UTC()
		query = query.Where("comments.created_at >= ? AND comments.created_at < ?", r.Start, r.End)
	}
	if r, ok := ChoiceRange(filter.Updated, now, s.loc); ok {
		r = r.UTC()
		query = query.Where("comments.updated_at >= ? AND comments.updated_at < ?", r.Start, r.End)
	}
	return query
}

// SetActive 切换评论的可见状态。
func (s *CommentService) SetActive(ctx context.Context, id uint, active bool) (*db.Comment, error) {
	result := s.db.WithContext(ctx).Model(&db.Comment{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCommentNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a comment by id.
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Counts 返回评论总数与可见评论数。
func (s *CommentService) Counts(ctx context.Context) (total, active int64, err error) {
	if err = s.db.WithContext(ctx).Model(&db.Comment{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.WithContext(ctx).Model(&db.Comment{}).Where("active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
