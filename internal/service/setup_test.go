package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/machaira/blog/internal/config"
	"github.com/machaira/blog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: db.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())},
	}
	gdb, err := db.Open(cfg, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	if err := db.NewMigrator(gdb, "english").Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string) db.User {
	t.Helper()
	user := db.User{Username: username, Password: "x", IsStaff: true}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestTag(t *testing.T, gdb *gorm.DB, name string) db.Tag {
	t.Helper()
	tag := db.Tag{Name: name, Slug: name}
	if err := gdb.Create(&tag).Error; err != nil {
		t.Fatalf("create tag %s: %v", name, err)
	}
	return tag
}

type postFixture struct {
	title   string
	slug    string
	body    string
	status  string
	publish time.Time
	tags    []db.Tag
}

func createTestPost(t *testing.T, gdb *gorm.DB, author db.User, f postFixture) db.Post {
	t.Helper()
	if f.slug == "" {
		f.slug = f.title
	}
	if f.body == "" {
		f.body = "body of " + f.title
	}
	if f.status == "" {
		f.status = db.StatusPublished
	}
	if f.publish.IsZero() {
		f.publish = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	post := db.Post{
		Title:    f.title,
		Slug:     f.slug,
		Body:     f.body,
		AuthorID: author.ID,
		Publish:  f.publish,
		Status:   f.status,
		Tags:     f.tags,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", f.title, err)
	}
	return post
}

func postIDs(posts []db.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
