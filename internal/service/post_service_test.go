package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/machaira/blog/internal/db"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestPostService_ListPublishedPaginatesNewestFirst(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "lister")

	var published []db.Post
	for i := 1; i <= 4; i++ {
		published = append(published, createTestPost(t, gdb, author, postFixture{
			title:   "post-" + string(rune('a'+i)),
			publish: day(i, 9),
		}))
	}
	createTestPost(t, gdb, author, postFixture{title: "draft", status: db.StatusDraft, publish: day(10, 9)})

	first, err := svc.ListPublished(ctx, "")
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	want := []uint{published[3].ID, published[2].ID, published[1].ID}
	if !equalIDs(postIDs(first.Posts), want) {
		t.Fatalf("expected %v, got %v", want, postIDs(first.Posts))
	}
	if first.Page.Count != 4 || first.Page.NumPages != 2 {
		t.Fatalf("unexpected page info %+v", first.Page)
	}

	last, err := svc.ListPublished(ctx, "99")
	if err != nil {
		t.Fatalf("list published past the end: %v", err)
	}
	if last.Page.Number != 2 || !equalIDs(postIDs(last.Posts), []uint{published[0].ID}) {
		t.Fatalf("expected last page with oldest post, got %d %v", last.Page.Number, postIDs(last.Posts))
	}

	junk, err := svc.ListPublished(ctx, "abc")
	if err != nil {
		t.Fatalf("list published with junk page: %v", err)
	}
	if junk.Page.Number != 1 {
		t.Fatalf("expected page 1 for junk input, got %d", junk.Page.Number)
	}
}

func TestPostService_ListPublishedEmpty(t *testing.T) {
	gdb := setupServiceTestDB(t)
	page, err := NewPostService(gdb).ListPublished(context.Background(), "3")
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(page.Posts) != 0 || page.Page.Number != 1 || page.Page.NumPages != 1 {
		t.Fatalf("expected one empty page, got %+v", page.Page)
	}
}

func TestPostService_ListByTag(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "tagger")
	golang := createTestTag(t, gdb, "go")
	other := createTestTag(t, gdb, "other")

	tagged := createTestPost(t, gdb, author, postFixture{title: "tagged", tags: []db.Tag{golang}})
	createTestPost(t, gdb, author, postFixture{title: "untagged", tags: []db.Tag{other}})
	createTestPost(t, gdb, author, postFixture{title: "tagged-draft", status: db.StatusDraft, tags: []db.Tag{golang}})

	tag, page, err := svc.ListByTag(ctx, "go", "")
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if tag.ID != golang.ID {
		t.Fatalf("expected tag %d, got %d", golang.ID, tag.ID)
	}
	if !equalIDs(postIDs(page.Posts), []uint{tagged.ID}) {
		t.Fatalf("expected only the published tagged post, got %v", postIDs(page.Posts))
	}

	if _, _, err := svc.ListByTag(ctx, "missing", ""); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestPostService_GetByNaturalKey(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "keyed")

	post := createTestPost(t, gdb, author, postFixture{title: "hello", publish: time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)})
	createTestPost(t, gdb, author, postFixture{title: "secret", status: db.StatusDraft, publish: day(9, 10)})

	got, err := svc.GetByNaturalKey(ctx, 2024, 3, 9, "hello")
	if err != nil {
		t.Fatalf("get by natural key: %v", err)
	}
	if got.ID != post.ID {
		t.Fatalf("expected post %d, got %d", post.ID, got.ID)
	}

	tests := []struct {
		name              string
		year, month, dayN int
		slug              string
	}{
		{name: "next day", year: 2024, month: 3, dayN: 10, slug: "hello"},
		{name: "wrong slug", year: 2024, month: 3, dayN: 9, slug: "other"},
		{name: "draft", year: 2024, month: 3, dayN: 9, slug: "secret"},
		{name: "impossible date", year: 2024, month: 2, dayN: 30, slug: "hello"},
		{name: "month out of range", year: 2024, month: 13, dayN: 9, slug: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.GetByNaturalKey(ctx, tt.year, tt.month, tt.dayN, tt.slug); !errors.Is(err, ErrPostNotFound) {
				t.Fatalf("expected ErrPostNotFound, got %v", err)
			}
		})
	}
}

func TestPostService_GetByNaturalKeyUsesSiteTimeZone(t *testing.T) {
	gdb := setupServiceTestDB(t)
	loc := time.FixedZone("UTC+9", 9*60*60)
	svc := NewPostService(gdb).WithLocation(loc)
	ctx := context.Background()
	author := createTestUser(t, gdb, "tz")

	post := createTestPost(t, gdb, author, postFixture{title: "late", publish: time.Date(2024, 3, 9, 20, 30, 0, 0, time.UTC)})

	if _, err := svc.GetByNaturalKey(ctx, 2024, 3, 9, "late"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected utc date to miss in UTC+9, got %v", err)
	}
	got, err := svc.GetByNaturalKey(ctx, 2024, 3, 10, "late")
	if err != nil {
		t.Fatalf("get by local date: %v", err)
	}
	if got.ID != post.ID || got.Path(loc) != "/blog/posts/2024/3/10/late/" {
		t.Fatalf("unexpected post %d at %s", got.ID, got.Path(loc))
	}
}

func TestPostService_GetPublishedHidesDrafts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "drafter")
	draft := createTestPost(t, gdb, author, postFixture{title: "draft", status: db.StatusDraft})
	live := createTestPost(t, gdb, author, postFixture{title: "live"})

	if _, err := svc.GetPublished(ctx, draft.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
	got, err := svc.GetPublished(ctx, live.ID)
	if err != nil || got.Title != "live" {
		t.Fatalf("expected live post, got %v %v", got, err)
	}
	if got.Author.Username != "drafter" {
		t.Fatalf("expected author to be preloaded, got %+v", got.Author)
	}
}

func TestPostService_SimilarRanksBySharedTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "similar")
	a := createTestTag(t, gdb, "a")
	b := createTestTag(t, gdb, "b")
	c := createTestTag(t, gdb, "c")
	d := createTestTag(t, gdb, "d")

	base := createTestPost(t, gdb, author, postFixture{title: "base", publish: day(1, 9), tags: []db.Tag{a, b, c}})
	two := createTestPost(t, gdb, author, postFixture{title: "two", publish: day(2, 9), tags: []db.Tag{a, b}})
	oneOld := createTestPost(t, gdb, author, postFixture{title: "one-old", publish: day(3, 9), tags: []db.Tag{c}})
	oneNew := createTestPost(t, gdb, author, postFixture{title: "one-new", publish: day(5, 9), tags: []db.Tag{a, d}})
	three := createTestPost(t, gdb, author, postFixture{title: "three", publish: day(4, 9), tags: []db.Tag{a, b, c, d}})
	createTestPost(t, gdb, author, postFixture{title: "unrelated", publish: day(6, 9), tags: []db.Tag{d}})
	createTestPost(t, gdb, author, postFixture{title: "draft", status: db.StatusDraft, publish: day(7, 9), tags: []db.Tag{a, b, c}})
	extra := createTestPost(t, gdb, author, postFixture{title: "extra", publish: day(1, 8), tags: []db.Tag{b}})

	loaded, err := svc.Get(ctx, base.ID)
	if err != nil {
		t.Fatalf("load base: %v", err)
	}

	similar, err := svc.Similar(ctx, loaded, 0)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	want := []uint{three.ID, two.ID, oneNew.ID, oneOld.ID}
	if !equalIDs(postIDs(similar), want) {
		t.Fatalf("expected %v, got %v", want, postIDs(similar))
	}
	if similar[0].SharedTags != 3 || similar[1].SharedTags != 2 || similar[2].SharedTags != 1 {
		t.Fatalf("unexpected shared tag counts %d %d %d", similar[0].SharedTags, similar[1].SharedTags, similar[2].SharedTags)
	}

	all, err := svc.Similar(ctx, loaded, 10)
	if err != nil {
		t.Fatalf("similar with larger limit: %v", err)
	}
	if len(all) != 5 || all[4].ID != extra.ID {
		t.Fatalf("expected extra post last, got %v", postIDs(all))
	}

	// 没有预加载标签时从关联表读取
	bare := db.Post{ID: base.ID}
	fromTable, err := svc.Similar(ctx, &bare, 4)
	if err != nil {
		t.Fatalf("similar without tags loaded: %v", err)
	}
	if !equalIDs(postIDs(fromTable), want) {
		t.Fatalf("expected %v, got %v", want, postIDs(fromTable))
	}
}

func TestPostService_SimilarWithoutTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	author := createTestUser(t, gdb, "lonely")
	post := createTestPost(t, gdb, author, postFixture{title: "alone"})

	loaded, err := svc.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("load post: %v", err)
	}
	similar, err := svc.Similar(context.Background(), loaded, 4)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if len(similar) != 0 {
		t.Fatalf("expected no similar posts, got %v", postIDs(similar))
	}
}

func TestPostService_SearchMatchesAllTokens(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "searcher")

	both := createTestPost(t, gdb, author, postFixture{title: "Learning Go", body: "Channels and goroutines", publish: day(2, 9)})
	titleOnly := createTestPost(t, gdb, author, postFixture{title: "Go channels", body: "nothing else", publish: day(3, 9)})
	createTestPost(t, gdb, author, postFixture{title: "Python", body: "generators", publish: day(4, 9)})
	createTestPost(t, gdb, author, postFixture{title: "Go drafts", body: "channels", status: db.StatusDraft, publish: day(5, 9)})
	createTestPost(t, gdb, author, postFixture{title: "Percent", body: "100% done", publish: day(6, 9)})

	got, err := svc.Search(ctx, "GO channels")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []uint{titleOnly.ID, both.ID}
	if !equalIDs(postIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, postIDs(got))
	}

	none, err := svc.Search(ctx, "go rust")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no results, got %v", postIDs(none))
	}

	wildcard, err := svc.Search(ctx, "_%")
	if err != nil {
		t.Fatalf("search wildcard: %v", err)
	}
	if len(wildcard) != 0 {
		t.Fatalf("expected wildcards to be matched literally, got %v", postIDs(wildcard))
	}

	blank, err := svc.Search(ctx, "   ")
	if err != nil || len(blank) != 0 {
		t.Fatalf("expected blank search to return nothing, got %v %v", postIDs(blank), err)
	}
}

func TestPostService_SearchNonASCIITitle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "unicode")

	cafe := createTestPost(t, gdb, author, postFixture{title: "CAFÉ NOIR", body: "Ein Straßencafé", publish: day(2, 9)})

	for _, text := range []string{"CAFÉ", "cafÉ noir", "Straßencafé"} {
		got, err := svc.Search(ctx, text)
		if err != nil {
			t.Fatalf("search %q: %v", text, err)
		}
		if !equalIDs(postIDs(got), []uint{cafe.ID}) {
			t.Fatalf("search %q: expected %v, got %v", text, []uint{cafe.ID}, postIDs(got))
		}
	}
}

func TestPostService_SidebarQueries(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "sidebar")

	quiet := createTestPost(t, gdb, author, postFixture{title: "quiet", publish: day(5, 9)})
	busy := createTestPost(t, gdb, author, postFixture{title: "busy", publish: day(1, 9)})
	some := createTestPost(t, gdb, author, postFixture{title: "some", publish: day(2, 9)})
	createTestPost(t, gdb, author, postFixture{title: "draft", status: db.StatusDraft, publish: day(9, 9)})

	for i := 0; i < 3; i++ {
		if err := gdb.Create(&db.Comment{PostID: busy.ID, Name: "n", Email: "e@example.com", Body: "b", Active: true}).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	if err := gdb.Create(&db.Comment{PostID: some.ID, Name: "n", Email: "e@example.com", Body: "b", Active: true}).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	count, err := svc.CountPublished(ctx)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 published posts, got %d %v", count, err)
	}

	latest, err := svc.Latest(ctx, 2)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !equalIDs(postIDs(latest), []uint{quiet.ID, some.ID}) {
		t.Fatalf("unexpected latest %v", postIDs(latest))
	}

	most, err := svc.MostCommented(ctx, 5)
	if err != nil {
		t.Fatalf("most commented: %v", err)
	}
	if !equalIDs(postIDs(most), []uint{busy.ID, some.ID, quiet.ID}) {
		t.Fatalf("unexpected most commented %v", postIDs(most))
	}
	if most[0].TotalComments != 3 || most[2].TotalComments != 0 {
		t.Fatalf("unexpected comment totals %d %d", most[0].TotalComments, most[2].TotalComments)
	}

	all, err := svc.ListAllPublished(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 published posts, got %d %v", len(all), err)
	}
}

func TestPostService_CreateDerivesSlugAndTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "creator")
	publish := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	post, err := svc.Create(ctx, PostInput{
		Title:    "Hello, World!",
		Body:     "first",
		AuthorID: author.ID,
		Publish:  &publish,
		Status:   "pb",
		Tags:     []string{"go", "web"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "hello-world" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
	if post.Status != db.StatusPublished {
		t.Fatalf("expected published status, got %q", post.Status)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(post.Tags))
	}

	if _, err := svc.Create(ctx, PostInput{Title: "Hello World", Body: "again", AuthorID: author.ID, Publish: &publish}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	nextDay := publish.AddDate(0, 0, 1)
	other, err := svc.Create(ctx, PostInput{Title: "Hello World", Body: "again", AuthorID: author.ID, Publish: &nextDay, Tags: []string{"go"}})
	if err != nil {
		t.Fatalf("create same slug on another day: %v", err)
	}
	if other.Status != db.StatusDraft {
		t.Fatalf("expected draft by default, got %q", other.Status)
	}

	var tagCount int64
	if err := gdb.Model(&db.Tag{}).Count(&tagCount).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if tagCount != 2 {
		t.Fatalf("expected tags to be reused, got %d", tagCount)
	}
}

func TestPostService_CreateRejectsInvalidInput(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "invalid")

	tests := []struct {
		name  string
		input PostInput
	}{
		{name: "missing title", input: PostInput{Body: "x", AuthorID: author.ID}},
		{name: "missing body", input: PostInput{Title: "t", AuthorID: author.ID}},
		{name: "missing author", input: PostInput{Title: "t", Body: "x"}},
		{name: "unknown author", input: PostInput{Title: "t", Body: "x", AuthorID: 999}},
		{name: "bad status", input: PostInput{Title: "t", Body: "x", AuthorID: author.ID, Status: "XX"}},
		{name: "unsluggable title", input: PostInput{Title: "???", Body: "x", AuthorID: author.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.input); !errors.Is(err, ErrInvalidPostInput) {
				t.Fatalf("expected ErrInvalidPostInput, got %v", err)
			}
		})
	}
}

func TestPostService_UpdateReplacesTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "updater")

	post, err := svc.Create(ctx, PostInput{Title: "Draft", Body: "x", AuthorID: author.ID, Tags: []string{"old"}})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	updated, err := svc.Update(ctx, post.ID, PostInput{Title: "Final", Slug: "final-cut", Body: "y", Status: db.StatusPublished, Tags: []string{"new"}})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Slug != "final-cut" || updated.Status != db.StatusPublished || updated.AuthorID != author.ID {
		t.Fatalf("unexpected updated post %+v", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "new" {
		t.Fatalf("expected tags to be replaced, got %+v", updated.Tags)
	}
	if !updated.Publish.Equal(post.Publish) {
		t.Fatalf("expected publish to be kept, got %s want %s", updated.Publish, post.Publish)
	}

	if _, err := svc.Update(ctx, 999, PostInput{Title: "x", Body: "y"}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_UpdateKeepsOmittedSlugAndTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "keeper")

	post, err := svc.Create(ctx, PostInput{Title: "Original title", Slug: "stable-url", Body: "x", AuthorID: author.ID, Tags: []string{"go", "web"}})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	updated, err := svc.Update(ctx, post.ID, PostInput{Title: "Renamed title", Body: "y"})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Slug != "stable-url" {
		t.Fatalf("expected slug to be kept, got %q", updated.Slug)
	}
	if len(updated.Tags) != 2 {
		t.Fatalf("expected tags to be kept, got %+v", updated.Tags)
	}

	cleared, err := svc.Update(ctx, post.ID, PostInput{Title: "Renamed title", Body: "y", Tags: []string{}})
	if err != nil {
		t.Fatalf("clear tags: %v", err)
	}
	if len(cleared.Tags) != 0 {
		t.Fatalf("expected empty tag list to clear tags, got %+v", cleared.Tags)
	}
}

func TestPostService_DeleteCascades(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	ctx := context.Background()
	author := createTestUser(t, gdb, "deleter")
	tag := createTestTag(t, gdb, "kept")
	post := createTestPost(t, gdb, author, postFixture{title: "doomed", tags: []db.Tag{tag}})
	survivor := createTestPost(t, gdb, author, postFixture{title: "survivor", tags: []db.Tag{tag}})

	for _, id := range []uint{post.ID, survivor.ID} {
		if err := gdb.Create(&db.Comment{PostID: id, Name: "n", Email: "e@example.com", Body: "b", Active: true}).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var comments, links, tags int64
	gdb.Model(&db.Comment{}).Count(&comments)
	gdb.Table("post_tags").Count(&links)
	gdb.Model(&db.Tag{}).Count(&tags)
	if comments != 1 || links != 1 || tags != 1 {
		t.Fatalf("expected only survivor rows and the shared tag, got comments=%d links=%d tags=%d", comments, links, tags)
	}

	if err := svc.Delete(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
}

func TestPostService_AdminListFilters(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPostService(gdb)
	svc.now = func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()
	alice := createTestUser(t, gdb, "alice")
	bob := createTestUser(t, gdb, "bob")

	p1 := createTestPost(t, gdb, alice, postFixture{title: "march-one", publish: day(1, 9)})
	p2 := createTestPost(t, gdb, bob, postFixture{title: "march-two", publish: day(2, 9), status: db.StatusDraft})
	p3 := createTestPost(t, gdb, alice, postFixture{title: "april", publish: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)})
	p4 := createTestPost(t, gdb, bob, postFixture{title: "old", publish: time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC), body: "Needle here"})

	all, err := svc.List(ctx, PostFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// 草稿在前，其余按发布时间正序
	want := []uint{p2.ID, p4.ID, p1.ID, p3.ID}
	if !equalIDs(postIDs(all.Posts), want) {
		t.Fatalf("expected %v, got %v", want, postIDs(all.Posts))
	}
	if all.PublishedCount != 3 || all.DraftCount != 1 || all.Page.PerPage != 20 {
		t.Fatalf("unexpected counters %+v", all)
	}

	tests := []struct {
		name   string
		filter PostFilter
		want   []uint
	}{
		{name: "status", filter: PostFilter{Status: db.StatusDraft}, want: []uint{p2.ID}},
		{name: "author", filter: PostFilter{AuthorID: alice.ID}, want: []uint{p1.ID, p3.ID}},
		{name: "year", filter: PostFilter{Year: 2024}, want: []uint{p2.ID, p1.ID, p3.ID}},
		{name: "month", filter: PostFilter{Year: 2024, Month: 3}, want: []uint{p2.ID, p1.ID}},
		{name: "day", filter: PostFilter{Year: 2024, Month: 3, Day: 2}, want: []uint{p2.ID}},
		{name: "invalid day", filter: PostFilter{Year: 2024, Month: 2, Day: 31}, want: []uint{}},
		{name: "search", filter: PostFilter{Search: "needle"}, want: []uint{p4.ID}},
		{name: "created this year", filter: PostFilter{Created: DateThisYear}, want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !equalIDs(postIDs(got.Posts), tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, postIDs(got.Posts))
			}
		})
	}
}
