package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrSlugTaken        = errors.New("slug already used for this publish date")
	ErrInvalidPostInput = errors.New("invalid post")
)

const (
	// SimilarLimit 是详情页展示的相似文章数。
	SimilarLimit = 4
	maxTitleLen  = 250
	maxSlugLen   = 250
	defaultOrder = "posts.publish desc, posts.id desc"
)

// PostService wraps post related database operations.
type PostService struct {
	db           *gorm.DB
	loc          *time.Location
	searchConfig string
	now          func() time.Time
}

// PostPage 是一页文章及其分页信息。
type PostPage struct {
	Posts []db.Post
	Page  pagination.Page
}

// PostFilter describes filters for the admin post list.
type PostFilter struct {
	Search   string
	Status   string
	AuthorID uint
	// Year/Month/Day 构成发布日期层级，0 表示不限。
	Year  int
	Month int
	Day   int
	// Created 取 DateChoices 中的值。
	Created string
	Page    string
	PerPage int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts          []db.Post
	Page           pagination.Page
	PublishedCount int64
	DraftCount     int64
}

// PostInput represents fields accepted when creating or updating a post.
// 更新时 Slug 为空表示沿用原 slug，Tags 为 nil 表示不改动标签，空切片表示清空。
type PostInput struct {
	Title    string
	Slug     string
	Body     string
	AuthorID uint
	Publish  *time.Time
	Status   string
	Tags     []string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{
		db:           gdb,
		loc:          time.UTC,
		searchConfig: "english",
		now:          time.Now,
	}
}

// WithLocation 设置按日期查找文章时使用的站点时区。
func (s *PostService) WithLocation(loc *time.Location) *PostService {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// WithSearchConfig 设置 Postgres 全文检索配置，非法名称被忽略。
func (s *PostService) WithSearchConfig(name string) *PostService {
	if db.ValidSearchConfig(name) {
		s.searchConfig = name
	}
	return s
}

// Location 返回站点时区。
func (s *PostService) Location() *time.Location {
	return s.loc
}

func (s *PostService) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&db.Post{}).Where("posts.status = ?", db.StatusPublished)
}

// ListPublished 按发布时间倒序分页返回已发布文章。
func (s *PostService) ListPublished(ctx context.Context, rawPage string) (*PostPage, error) {
	return s.paginate(s.published(ctx), rawPage)
}

// ListByTag 返回带有指定标签的已发布文章。
func (s *PostService) ListByTag(ctx context.Context, tagSlug, rawPage string) (*db.Tag, *PostPage, error) {
	tag, err := findTagBySlug(s.db.WithContext(ctx), tagSlug)
	if err != nil {
		return nil, nil, err
	}

	subQuery := s.db.Table("post_tags").Select("post_tags.post_id").Where("post_tags.tag_id = ?", tag.ID)
	page, err := s.paginate(s.published(ctx).Where("posts.id IN (?)", subQuery), rawPage)
	if err != nil {
		return nil, nil, err
	}
	return tag, page, nil
}

func (s *PostService) paginate(query *gorm.DB, rawPage string) (*PostPage, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.New(total, pagination.PublicPerPage).Page(rawPage)
	posts := []db.Post{}
	if total > 0 {
		if err := query.
			Preload("Tags").
			Preload("Author").
			Order(defaultOrder).
			Limit(page.Limit()).
			Offset(page.Offset()).
			Find(&posts).Error; err != nil {
			return nil, err
		}
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

// GetByNaturalKey 按发布日期与 slug 查找已发布文章，日期按站点时区计算。
func (s *PostService) GetByNaturalKey(ctx context.Context, year, month, day int, postSlug string) (*db.Post, error) {
	r, ok := DayRange(year, month, day, s.loc)
	if !ok {
		return nil, ErrPostNotFound
	}
	r = r.UTC()

	var post db.Post
	if err := s.published(ctx).
		Preload("Tags").
		Preload("Author").
		Where("posts.slug = ?", postSlug).
		Where("posts.publish >= ? AND posts.publish < ?", r.Start, r.End).
		Order(defaultOrder).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublished 按 id 查找已发布文章，草稿视为不存在。
func (s *PostService) GetPublished(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.published(ctx).Preload("Tags").Preload("Author").Where("posts.id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Similar 返回与 post 共享标签最多的已发布文章，同分时较新的在前。
func (s *PostService) Similar(ctx context.Context, post *db.Post, limit int) ([]db.Post, error) {
	if post == nil {
		return []db.Post{}, nil
	}
	if limit <= 0 {
		limit = SimilarLimit
	}

	tagIDs := post.TagIDs()
	if len(tagIDs) == 0 && post.Tags == nil {
		if err := s.db.WithContext(ctx).Table("post_tags").
			Where("post_id = ?", post.ID).
			Pluck("tag_id", &tagIDs).Error; err != nil {
			return nil, err
		}
	}
	if len(tagIDs) == 0 {
		return []db.Post{}, nil
	}

	posts := []db.Post{}
	if err := s.published(ctx).
		Select("posts.*, COUNT(post_tags.tag_id) AS shared_tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id IN ?", tagIDs).
		Where("posts.id <> ?", post.ID).
		Group("posts.id").
		Order("shared_tags desc").
		Order(defaultOrder).
		Limit(limit).
		Preload("Tags").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Search 在已发布文章的标题与正文中检索 text。
// Postgres 使用 to_tsvector/plainto_tsquery 并按 ts_rank 排序；其他数据库要求每个词都出现。
func (s *PostService) Search(ctx context.Context, text string) ([]db.Post, error) {
	text = strings.TrimSpace(text)
	posts := []db.Post{}
	if text == "" {
		return posts, nil
	}

	query := s.published(ctx).Preload("Tags").Preload("Author")
	if db.IsPostgres(s.db) {
		vector := db.SearchVectorSQL(s.searchConfig)
		tsquery := fmt.Sprintf("plainto_tsquery('%s', ?)", s.searchConfig)
		query = query.
			Where(vector+" @@ "+tsquery, text).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:                "ts_rank(" + vector + ", " + tsquery + ") DESC, " + defaultOrder,
				Vars:               []any{text},
				WithoutParentheses: true,
			}})
	} else {
		// SQLite 的 LIKE 只对 ASCII 字母忽略大小写，其余字符按原样比较
		for _, token := range strings.Fields(text) {
			pattern := "%" + escapeLike(token) + "%"
			query = query.Where(`(posts.title LIKE ? ESCAPE '\' OR posts.body LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		query = query.Order(defaultOrder)
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CountPublished 返回已发布文章总数。
func (s *PostService) CountPublished(ctx context.Context) (int64, error) {
	var total int64
	err := s.published(ctx).Count(&total).Error
	return total, err
}

// Latest 返回最新发布的 n 篇文章。
func (s *PostService) Latest(ctx context.Context, n int) ([]db.Post, error) {
	posts := []db.Post{}
	if n <= 0 {
		return posts, nil
	}
	err := s.published(ctx).Preload("Author").Order(defaultOrder).Limit(n).Find(&posts).Error
	return posts, err
}

// MostCommented 返回评论数最多的 n 篇已发布文章，没有评论的文章也参与排序。
func (s *PostService) MostCommented(ctx context.Context, n int) ([]db.Post, error) {
	posts := []db.Post{}
	if n <= 0 {
		return posts, nil
	}
	err := s.published(ctx).
		Select("posts.*, COUNT(comments.id) AS total_comments").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id").
		Order("total_comments desc").
		Order(defaultOrder).
		Limit(n).
		Find(&posts).Error
	return posts, err
}

// ListAllPublished 返回全部已发布文章，用于 sitemap。
func (s *PostService) ListAllPublished(ctx context.Context) ([]db.Post, error) {
	posts := []db.Post{}
	err := s.published(ctx).Order(defaultOrder).Find(&posts).Error
	return posts, err
}

// Get fetches a post by id with tags and author preloaded.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).Preload("Tags").Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List provides paginated posts with aggregated counters based on filters.
func (s *PostService) List(ctx context.Context, filter PostFilter) (*PostListResult, error) {
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = pagination.AdminPerPage
	}

	result := &PostListResult{}
	var total int64
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Post{}), filter, true).Count(&total).Error; err != nil {
		return nil, err
	}
	result.Page = pagination.New(total, perPage).Page(filter.Page)

	posts := []db.Post{}
	if total > 0 {
		if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Post{}), filter, true).
			Preload("Tags").
			Preload("Author").
			Order("posts.status asc, posts.publish asc, posts.id asc").
			Limit(result.Page.Limit()).
			Offset(result.Page.Offset()).
			Find(&posts).Error; err != nil {
			return nil, err
		}
	}
	result.Posts = posts

	withoutStatus := filter
	withoutStatus.Status = ""
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Post{}), withoutStatus, false).
		Where("posts.status = ?", db.StatusPublished).
		Count(&result.PublishedCount).Error; err != nil {
		return nil, err
	}
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&db.Post{}), withoutStatus, false).
		Where("posts.status = ?", db.StatusDraft).
		Count(&result.DraftCount).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter, includeStatus bool) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.body) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if includeStatus && filter.Status != "" {
		query = query.Where("posts.status = ?", normalizeStatus(filter.Status))
	}

	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}

	if filter.Year != 0 {
		if r, ok := HierarchyRange(filter.Year, filter.Month, filter.Day, s.loc); ok {
			r = r.UTC()
			query = query.Where("posts.publish >= ? AND posts.publish < ?", r.Start, r.End)
		} else {
			query = query.Where("1 = 0")
		}
	}

	if r, ok := ChoiceRange(filter.Created, s.now(), s.loc); ok {
		r = r.UTC()
		query = query.Where("posts.created_at >= ? AND posts.created_at < ?", r.Start, r.End)
	}

	return query
}

// Counts 返回已发布与草稿文章数量，用于仪表盘。
func (s *PostService) Counts(ctx context.Context) (published, draft int64, err error) {
	if err = s.db.WithContext(ctx).Model(&db.Post{}).Where("status = ?", db.StatusPublished).Count(&published).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.WithContext(ctx).Model(&db.Post{}).Where("status = ?", db.StatusDraft).Count(&draft).Error; err != nil {
		return 0, 0, err
	}
	return published, draft, nil
}

// Create persists a post and associates tags in a transaction.
func (s *PostService) Create(ctx context.Context, input PostInput) (*db.Post, error) {
	post := db.Post{}
	if err := s.applyInput(&post, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(ctx, &post, input.Tags)
}

// Update applies updates to an existing post.
func (s *PostService) Update(ctx context.Context, id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.applyInput(&existing, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(ctx, &existing, input.Tags)
}

// Delete 在一个事务里删除文章、它的评论与标签关联。
func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (s *PostService) applyInput(post *db.Post, input PostInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPostInput)
	}
	if len([]rune(title)) > maxTitleLen {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidPostInput, maxTitleLen)
	}
	if strings.TrimSpace(input.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidPostInput)
	}

	postSlug := slug.Make(strings.TrimSpace(input.Slug))
	if postSlug == "" {
		postSlug = post.Slug
	}
	if postSlug == "" {
		postSlug = slug.Make(title)
	}
	postSlug = truncateSlug(postSlug, maxSlugLen)
	if postSlug == "" {
		return fmt.Errorf("%w: slug cannot be derived from title", ErrInvalidPostInput)
	}

	status := normalizeStatus(input.Status)
	if status == "" {
		status = post.Status
	}
	if status == "" {
		status = db.StatusDraft
	}
	if !db.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPostInput, input.Status)
	}

	if input.AuthorID != 0 {
		post.AuthorID = input.AuthorID
	}
	if post.AuthorID == 0 {
		return fmt.Errorf("%w: author is required", ErrInvalidPostInput)
	}

	switch {
	case input.Publish != nil && !input.Publish.IsZero():
		post.Publish = input.Publish.UTC()
	case post.Publish.IsZero():
		post.Publish = s.now().UTC()
	}

	post.Title = title
	post.Slug = postSlug
	post.Body = input.Body
	post.Status = status
	return nil
}

func normalizeStatus(raw string) string {
	switch status := strings.ToUpper(strings.TrimSpace(raw)); status {
	case "DRAFT":
		return db.StatusDraft
	case "PUBLISHED":
		return db.StatusPublished
	default:
		return status
	}
}

func (s *PostService) saveWithTags(ctx context.Context, post *db.Post, tagNames []string) (*db.Post, error) {
	return post, s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author int64
		if err := tx.Model(&db.User{}).Where("id = ?", post.AuthorID).Count(&author).Error; err != nil {
			return err
		}
		if author == 0 {
			return fmt.Errorf("%w: author %d does not exist", ErrInvalidPostInput, post.AuthorID)
		}

		if err := s.ensureSlugFree(tx, post); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}

		if tagNames == nil {
			return tx.Preload("Tags").Preload("Author").First(post, post.ID).Error
		}

		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			if err := tx.Model(post).Association("Tags").Clear(); err != nil {
				return err
			}
		} else if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return tx.Preload("Tags").Preload("Author").First(post, post.ID).Error
	})
}

// ensureSlugFree 保证同一发布日内 slug 唯一。
func (s *PostService) ensureSlugFree(tx *gorm.DB, post *db.Post) error {
	local := post.Publish.In(s.loc)
	r, _ := DayRange(local.Year(), int(local.Month()), local.Day(), s.loc)
	r = r.UTC()

	query := tx.Model(&db.Post{}).
		Where("slug = ?", post.Slug).
		Where("publish >= ? AND publish < ?", r.Start, r.End)
	if post.ID != 0 {
		query = query.Where("id <> ?", post.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}
