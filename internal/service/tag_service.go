package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/machaira/blog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTagExists       = errors.New("tag already exists")
	ErrTagNotFound     = errors.New("tag not found")
	ErrInvalidTagInput = errors.New("invalid tag")
)

const maxTagLength = 100

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns tags ordered by name together with their post counts.
func (s *TagService) List(ctx context.Context) ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.WithContext(ctx).
		Model(&db.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name asc").
		Order("tags.id asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Get fetches a tag by id.
func (s *TagService) Get(ctx context.Context, id uint) (*db.Tag, error) {
	var tag db.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// GetBySlug 按 slug 查找标签。
func (s *TagService) GetBySlug(ctx context.Context, tagSlug string) (*db.Tag, error) {
	return findTagBySlug(s.db.WithContext(ctx), tagSlug)
}

// Create inserts a new tag with unique name.
func (s *TagService) Create(ctx context.Context, name string) (*db.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}

	var tag db.Tag
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTagExists
		}

		tagSlug, err := uniqueTagSlug(tx, name, 0)
		if err != nil {
			return err
		}
		tag = db.Tag{Name: name, Slug: tagSlug}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update 重命名标签并重新生成 slug。
func (s *TagService) Update(ctx context.Context, id uint, name string) (*db.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}

	var tag db.Tag
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&db.Tag{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTagExists
		}

		tagSlug, err := uniqueTagSlug(tx, name, id)
		if err != nil {
			return err
		}
		tag.Name = name
		tag.Slug = tagSlug
		return tx.Model(&tag).Select("name", "slug").Updates(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete 删除标签并解除它与文章的关联，文章本身保留。
func (s *TagService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag db.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// ParseTagNames 解析逗号或空格分隔的标签列表，有逗号时按逗号切分。
// 结果去重并按名称排序。
func ParseTagNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Fields(raw)
	}

	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveTags 按名称查找标签，不存在的会被创建；必须在事务内调用。
func resolveTags(tx *gorm.DB, names []string) ([]db.Tag, error) {
	tags := make([]db.Tag, 0, len(names))
	for _, raw := range names {
		name, err := normalizeTagName(raw)
		if err != nil {
			return nil, err
		}

		var tag db.Tag
		err = tx.Where("name = ?", name).First(&tag).Error
		if err == nil {
			tags = append(tags, tag)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		tagSlug, err := uniqueTagSlug(tx, name, 0)
		if err != nil {
			return nil, err
		}
		tag = db.Tag{Name: name, Slug: tagSlug}
		if err := tx.Create(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// uniqueTagSlug 生成不与其他标签冲突的 slug：name、name-2、name-3……
func uniqueTagSlug(tx *gorm.DB, name string, excludeID uint) (string, error) {
	base := truncateSlug(slug.Make(name), maxTagLength-4)
	if base == "" {
		base = "tag"
	}

	candidate := base
	for i := 2; ; i++ {
		query := tx.Model(&db.Tag{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func findTagBySlug(tx *gorm.DB, tagSlug string) (*db.Tag, error) {
	tagSlug = strings.TrimSpace(tagSlug)
	if tagSlug == "" {
		return nil, ErrTagNotFound
	}
	var tag db.Tag
	if err := tx.Where("slug = ?", tagSlug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func normalizeTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidTagInput)
	}
	if len([]rune(name)) > maxTagLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidTagInput, maxTagLength)
	}
	return name, nil
}

func truncateSlug(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.TrimRight(s[:limit], "-")
}
