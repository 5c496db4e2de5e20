package db

import (
	"context"
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

// Migration 描述一次带版本号的结构变更。
type Migration struct {
	Version     int
	Description string
	// PostgresOnly 的迁移在其他数据库上记为已执行但不做任何事。
	PostgresOnly bool
	Up           func(*gorm.DB) error
	Down         func(*gorm.DB) error
}

// MigrationHistory 记录已执行的迁移。
type MigrationHistory struct {
	ID          uint   `gorm:"primaryKey"`
	Version     int    `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	AppliedAt   int64  `gorm:"autoCreateTime"`
}

// MigrationStatus 是 migrate --status 输出的一行。
type MigrationStatus struct {
	Version     int
	Description string
	Applied     bool
}

// Migrator 按版本顺序执行迁移。
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

var searchConfigPattern = regexp.MustCompile(`^[a-z_]+$`)

// ValidSearchConfig 判断全文检索配置名能否安全拼入 SQL。
func ValidSearchConfig(name string) bool {
	return searchConfigPattern.MatchString(name)
}

// NewMigrator 创建迁移器，searchConfig 为全文索引使用的文本检索配置。
func NewMigrator(gdb *gorm.DB, searchConfig string) *Migrator {
	if !ValidSearchConfig(searchConfig) {
		searchConfig = "english"
	}
	return &Migrator{
		db:         gdb,
		migrations: allMigrations(searchConfig),
	}
}

// Migrate 执行所有未执行的迁移。
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&MigrationHistory{}); err != nil {
		return fmt.Errorf("failed to create migration history table: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if applied[migration.Version] {
			continue
		}
		if err := m.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}
	}
	return nil
}

// Rollback 回滚最后一次迁移。
func (m *Migrator) Rollback(ctx context.Context) error {
	var last MigrationHistory
	if err := m.db.WithContext(ctx).Order("version DESC").First(&last).Error; err != nil {
		return fmt.Errorf("no migrations to rollback: %w", err)
	}

	var migration *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == last.Version {
			migration = &m.migrations[i]
			break
		}
	}
	if migration == nil {
		return fmt.Errorf("migration %d not found", last.Version)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.applies(*migration) {
			if err := migration.Down(tx); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
		}
		if err := tx.Delete(&last).Error; err != nil {
			return fmt.Errorf("failed to update migration history: %w", err)
		}
		return nil
	})
}

// Status 返回每个迁移是否已执行。
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if !m.db.Migrator().HasTable(&MigrationHistory{}) {
		statuses := make([]MigrationStatus, 0, len(m.migrations))
		for _, migration := range m.migrations {
			statuses = append(statuses, MigrationStatus{Version: migration.Version, Description: migration.Description})
		}
		return statuses, nil
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, migration := range m.migrations {
		statuses = append(statuses, MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     applied[migration.Version],
		})
	}
	return statuses, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	var applied []MigrationHistory
	if err := m.db.WithContext(ctx).Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	versions := make(map[int]bool, len(applied))
	for _, a := range applied {
		versions[a.Version] = true
	}
	return versions, nil
}

func (m *Migrator) applies(migration Migration) bool {
	return !migration.PostgresOnly || IsPostgres(m.db)
}

func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.applies(migration) {
			if err := migration.Up(tx); err != nil {
				return err
			}
		}
		return tx.Create(&MigrationHistory{
			Version:     migration.Version,
			Description: migration.Description,
		}).Error
	})
}

// SearchVectorSQL 返回文章全文检索使用的 tsvector 表达式，索引与查询必须保持一致。
func SearchVectorSQL(searchConfig string) string {
	return fmt.Sprintf("to_tsvector('%s', coalesce(posts.title, '') || ' ' || coalesce(posts.body, ''))", searchConfig)
}

func allMigrations(searchConfig string) []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Initial blog schema",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&User{}, &Tag{}, &Post{}, &Comment{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("post_tags", &Comment{}, &Post{}, &Tag{}, &User{})
			},
		},
		{
			Version:      2,
			Description:  "Full-text search index on posts",
			PostgresOnly: true,
			Up: func(tx *gorm.DB) error {
				sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_posts_search ON posts USING GIN (%s)", SearchVectorSQL(searchConfig))
				return tx.Exec(sql).Error
			},
			Down: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_posts_search").Error
			},
		},
		{
			Version:     3,
			Description: "Ordering indexes for published posts and comments",
			Up: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_posts_status_publish ON posts (status, publish DESC)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_comments_post_active ON comments (post_id, active, created_at)").Error
			},
			Down: func(tx *gorm.DB) error {
				if err := tx.Exec("DROP INDEX IF EXISTS idx_posts_status_publish").Error; err != nil {
					return err
				}
				return tx.Exec("DROP INDEX IF EXISTS idx_comments_post_active").Error
			},
		},
	}
}
