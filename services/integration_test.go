package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB connects to the test database and migrates the schema.
// Skips unless RUN_INTEGRATION_TESTS=true and TEST_DATABASE_DSN is set.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.College{},
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.PostComment{},
		&model.Event{},
		&model.EventAttendee{},
		&model.UserNotification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// seedCommunity creates a college with two members for a test run
func seedCommunity(t *testing.T, db *gorm.DB) (*model.College, *model.User, *model.User) {
	t.Helper()

	suffix := time.Now().UnixNano()

	college := model.College{Name: fmt.Sprintf("Test College %d", suffix)}
	if err := db.Create(&college).Error; err != nil {
		t.Fatalf("failed to create college: %v", err)
	}

	author := model.User{
		Email:        fmt.Sprintf("author-%d@example.com", suffix),
		PasswordHash: "x",
		FirstName:    "Author",
		Role:         model.RoleAlumni,
		CollegeID:    &college.ID,
		IsOnboarded:  true,
	}
	viewer := model.User{
		Email:        fmt.Sprintf("viewer-%d@example.com", suffix),
		PasswordHash: "x",
		FirstName:    "Viewer",
		Role:         model.RoleStudent,
		CollegeID:    &college.ID,
		IsOnboarded:  true,
	}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to create author: %v", err)
	}
	if err := db.Create(&viewer).Error; err != nil {
		t.Fatalf("failed to create viewer: %v", err)
	}

	return &college, &author, &viewer
}

func TestToggleLikeFlipsStateAtomically(t *testing.T) {
	db := setupTestDB(t)
	_, author, viewer := seedCommunity(t, db)
	svc := NewFeedService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: *author.CollegeID, Content: "hello"}
	if err := svc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	liked, err := svc.ToggleLike(ctx, post.ID, viewer.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !liked {
		t.Error("first toggle should like the post")
	}

	liked, err = svc.ToggleLike(ctx, post.ID, viewer.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike the post")
	}

	var count int64
	db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 like rows after two toggles, got %d", count)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	db := setupTestDB(t)
	_, _, viewer := seedCommunity(t, db)
	svc := NewFeedService(db)

	if _, err := svc.ToggleLike(context.Background(), 999999999, viewer.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFeedCountsAndViewerFlag(t *testing.T) {
	db := setupTestDB(t)
	college, author, viewer := seedCommunity(t, db)
	svc := NewFeedService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "feed post", Category: model.PostCategoryJobs}
	if err := svc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if _, err := svc.ToggleLike(ctx, post.ID, viewer.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, viewer.ID, "first"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, author.ID, "second"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	feed, total, err := svc.GetPostsByCollege(ctx, FeedOptions{
		CollegeID: college.ID,
		Limit:     20,
		Offset:    0,
		ViewerID:  viewer.ID,
	})
	if err != nil {
		t.Fatalf("GetPostsByCollege failed: %v", err)
	}
	if total != 1 || len(feed) != 1 {
		t.Fatalf("expected exactly one post, got total=%d len=%d", total, len(feed))
	}

	row := feed[0]
	if row.LikesCount != 1 {
		t.Errorf("LikesCount = %d, want 1", row.LikesCount)
	}
	if row.CommentsCount != 2 {
		t.Errorf("CommentsCount = %d, want 2", row.CommentsCount)
	}
	if row.IsLikedByUser == nil || !*row.IsLikedByUser {
		t.Error("expected IsLikedByUser to be true for the liking viewer")
	}
	if row.Author.ID != author.ID {
		t.Errorf("Author.ID = %d, want %d", row.Author.ID, author.ID)
	}

	// Category filter excludes the post
	feed, total, err = svc.GetPostsByCollege(ctx, FeedOptions{
		CollegeID: college.ID,
		Limit:     20,
		Category:  string(model.PostCategoryAdvice),
		ViewerID:  viewer.ID,
	})
	if err != nil {
		t.Fatalf("GetPostsByCollege with filter failed: %v", err)
	}
	if total != 0 || len(feed) != 0 {
		t.Errorf("expected empty filtered feed, got total=%d len=%d", total, len(feed))
	}
}

func TestCommentsOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	college, author, viewer := seedCommunity(t, db)
	svc := NewFeedService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "thread"}
	if err := svc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.AddComment(ctx, post.ID, viewer.ID, content); err != nil {
			t.Fatalf("AddComment(%q) failed: %v", content, err)
		}
	}

	comments, err := svc.GetComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetComments failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i].CreatedAt.Before(comments[i-1].CreatedAt) {
			t.Error("comments are not ordered oldest first")
		}
	}
	if comments[0].Content != "one" || comments[2].Content != "three" {
		t.Errorf("unexpected order: %q ... %q", comments[0].Content, comments[2].Content)
	}
}

func TestOwnershipScopedMutations(t *testing.T) {
	db := setupTestDB(t)
	college, author, other := seedCommunity(t, db)
	svc := NewFeedService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "mine"}
	if err := svc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	content := "hijacked"
	if _, err := svc.UpdatePost(ctx, post.ID, other.ID, PostUpdates{Content: &content}); err != gorm.ErrRecordNotFound {
		t.Errorf("non-owner update: expected ErrRecordNotFound, got %v", err)
	}

	if err := svc.DeletePost(ctx, post.ID, other.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("non-owner delete: expected ErrRecordNotFound, got %v", err)
	}

	// Owner can still do both
	updated, err := svc.UpdatePost(ctx, post.ID, author.ID, PostUpdates{Content: &content})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Content != "hijacked" {
		t.Errorf("Content = %q, want hijacked", updated.Content)
	}

	if err := svc.DeletePost(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestDeletePostRemovesLikesAndComments(t *testing.T) {
	db := setupTestDB(t)
	college, author, viewer := seedCommunity(t, db)
	svc := NewFeedService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "doomed"}
	if err := svc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := svc.ToggleLike(ctx, post.ID, viewer.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, viewer.ID, "gone soon"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if err := svc.DeletePost(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	var likes, comments int64
	db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&likes)
	db.Model(&model.PostComment{}).Where("post_id = ?", post.ID).Count(&comments)
	if likes != 0 || comments != 0 {
		t.Errorf("expected orphan rows removed, got likes=%d comments=%d", likes, comments)
	}
}

func TestSetAttendanceUpserts(t *testing.T) {
	db := setupTestDB(t)
	college, organizer, attendee := seedCommunity(t, db)
	svc := NewEventService(db)
	ctx := context.Background()

	event := model.Event{
		Title:       "Homecoming",
		StartDate:   time.Now().Add(48 * time.Hour),
		OrganizerID: organizer.ID,
		CollegeID:   college.ID,
	}
	if err := svc.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := svc.SetAttendance(ctx, event.ID, attendee.ID, "going"); err != nil {
		t.Fatalf("first SetAttendance failed: %v", err)
	}
	if _, err := svc.SetAttendance(ctx, event.ID, attendee.ID, "maybe"); err != nil {
		t.Fatalf("second SetAttendance failed: %v", err)
	}

	var rows []model.EventAttendee
	if err := db.Where("event_id = ? AND user_id = ?", event.ID, attendee.ID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load attendance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one attendance row, got %d", len(rows))
	}
	if rows[0].Status != model.AttendanceMaybe {
		t.Errorf("Status = %q, want maybe", rows[0].Status)
	}

	annotated, err := svc.GetEvent(ctx, event.ID, attendee.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if annotated.AttendeesCount != 1 {
		t.Errorf("AttendeesCount = %d, want 1", annotated.AttendeesCount)
	}
	if annotated.UserAttendanceStatus != "maybe" {
		t.Errorf("UserAttendanceStatus = %q, want maybe", annotated.UserAttendanceStatus)
	}
}

func TestCollegeStats(t *testing.T) {
	db := setupTestDB(t)
	college, author, _ := seedCommunity(t, db)
	feedSvc := NewFeedService(db)
	collegeSvc := NewCollegeService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "counted"}
	if err := feedSvc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	stats, err := collegeSvc.GetCollegeStats(ctx, college.ID)
	if err != nil {
		t.Fatalf("GetCollegeStats failed: %v", err)
	}
	if stats.StudentsCount != 1 {
		t.Errorf("StudentsCount = %d, want 1", stats.StudentsCount)
	}
	if stats.AlumniCount != 1 {
		t.Errorf("AlumniCount = %d, want 1", stats.AlumniCount)
	}
	if stats.TotalPosts != 1 {
		t.Errorf("TotalPosts = %d, want 1", stats.TotalPosts)
	}

	if _, err := collegeSvc.GetCollegeStats(ctx, 999999999); err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound for unknown college, got %v", err)
	}
}

func TestNotificationFanOutSkipsSelf(t *testing.T) {
	db := setupTestDB(t)
	college, author, viewer := seedCommunity(t, db)
	feedSvc := NewFeedService(db)
	notifSvc := NewNotificationService(db)
	ctx := context.Background()

	post := model.Post{AuthorID: author.ID, CollegeID: college.ID, Content: "notify me"}
	if err := feedSvc.CreatePost(ctx, &post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Author liking their own post must not notify
	if err := notifSvc.NotifyPostLiked(ctx, &post, author); err != nil {
		t.Fatalf("NotifyPostLiked(self) failed: %v", err)
	}
	count, err := notifSvc.UnreadCount(ctx, author.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("self-like produced %d notifications, want 0", count)
	}

	// A different user liking does notify
	if err := notifSvc.NotifyPostLiked(ctx, &post, viewer); err != nil {
		t.Fatalf("NotifyPostLiked failed: %v", err)
	}
	count, err = notifSvc.UnreadCount(ctx, author.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("UnreadCount = %d, want 1", count)
	}

	// Mark-read is owner scoped
	notifications, _, err := notifSvc.List(ctx, author.ID, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if err := notifSvc.MarkAsRead(ctx, notifications[0].ID, viewer.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("non-owner mark-read: expected ErrRecordNotFound, got %v", err)
	}
	if err := notifSvc.MarkAsRead(ctx, notifications[0].ID, author.ID); err != nil {
		t.Errorf("owner mark-read failed: %v", err)
	}
}
