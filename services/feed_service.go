package services

import (
	"context"
	"fmt"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedService owns the post feed: the aggregate feed query, post CRUD,
// the like toggle and comments.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new feed service
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// FeedOptions are the knobs for the college feed query
type FeedOptions struct {
	CollegeID uint
	Limit     int
	Offset    int
	Category  string // empty or "all" means no filter
	ViewerID  uint   // 0 means anonymous: no per-viewer like flag
}

type feedRow struct {
	model.Post
	LikesCount    int64
	CommentsCount int64
}

// GetPostsByCollege returns the college feed, newest first. Each post
// carries its author profile and like/comment counts; when a viewer is
// known, also whether that viewer has liked it. Counts are recomputed
// from the live tables on every call.
func (s *FeedService) GetPostsByCollege(ctx context.Context, opts FeedOptions) ([]model.FeedPost, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Post{}).Where("posts.college_id = ?", opts.CollegeID)
	if opts.Category != "" && opts.Category != "all" {
		base = base.Where("posts.category = ?", opts.Category)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	// One aggregate query for the page. DISTINCT keeps the two joins from
	// inflating each other's counts.
	var rows []feedRow
	err := base.
		Select("posts.*, COUNT(DISTINCT post_likes.id) AS likes_count, COUNT(DISTINCT post_comments.id) AS comments_count").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Joins("LEFT JOIN post_comments ON post_comments.post_id = posts.id").
		Group("posts.id").
		Order("posts.created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if len(rows) == 0 {
		return []model.FeedPost{}, total, nil
	}

	postIDs := make([]uint, 0, len(rows))
	authorIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		postIDs = append(postIDs, row.ID)
		authorIDs = append(authorIDs, row.AuthorID)
	}

	authors, err := s.loadProfiles(ctx, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	// The viewer's like flag is scoped to one user, so it cannot come out
	// of the grouped aggregate. One IN-query covers the whole page.
	likedByViewer := map[uint]bool{}
	if opts.ViewerID != 0 {
		var likes []model.PostLike
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND post_id IN ?", opts.ViewerID, postIDs).
			Find(&likes).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch viewer likes: %w", err)
		}
		for _, like := range likes {
			likedByViewer[like.PostID] = true
		}
	}

	feed := make([]model.FeedPost, 0, len(rows))
	for _, row := range rows {
		post := model.FeedPost{
			Post:          row.Post,
			Author:        authors[row.AuthorID],
			LikesCount:    row.LikesCount,
			CommentsCount: row.CommentsCount,
		}
		if opts.ViewerID != 0 {
			liked := likedByViewer[row.ID]
			post.IsLikedByUser = &liked
		}
		feed = append(feed, post)
	}

	return feed, total, nil
}

// CreatePost creates a new post in the author's college
func (s *FeedService) CreatePost(ctx context.Context, post *model.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// PostUpdates carries the author-editable fields of a post
type PostUpdates struct {
	Title    *string
	Content  *string
	Category *string
	Location *string
}

// UpdatePost applies updates to a post owned by userID. The predicate is
// scoped to both the row id and the requester, so a non-owner gets the
// same ErrRecordNotFound as a nonexistent post.
func (s *FeedService) UpdatePost(ctx context.Context, postID, userID uint, updates PostUpdates) (*model.Post, error) {
	values := map[string]interface{}{}
	if updates.Title != nil {
		values["title"] = *updates.Title
	}
	if updates.Content != nil {
		values["content"] = *updates.Content
	}
	if updates.Category != nil {
		values["category"] = *updates.Category
	}
	if updates.Location != nil {
		values["location"] = *updates.Location
	}

	if len(values) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Post{}).
			Where("id = ? AND author_id = ?", postID, userID).
			Updates(values)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var post model.Post
	if err := s.db.WithContext(ctx).Where("id = ? AND author_id = ?", postID, userID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post owned by userID along with its likes and
// comments. Returns ErrRecordNotFound when the post does not exist or the
// requester is not the author.
func (s *FeedService) DeletePost(ctx context.Context, postID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND author_id = ?", postID, userID).Delete(&model.Post{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// The post row is soft-deleted; its likes and comments go for real
		// so no orphaned rows keep referencing it.
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete post likes: %w", err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostComment{}).Error; err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		return nil
	})
}

// ToggleLike flips the like state for (postID, userID) and returns the new
// state. The delete-then-insert runs in one transaction and the insert is
// conflict-aware, so two concurrent identical requests settle on a single
// flip instead of double-toggling.
func (s *FeedService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&model.Post{}).Where("id = ?", postID).Count(&postCount).Error; err != nil {
			return err
		}
		if postCount == 0 {
			return gorm.ErrRecordNotFound
		}

		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := model.PostLike{PostID: postID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// AddComment appends a comment to a post. Comments are append-only.
func (s *FeedService) AddComment(ctx context.Context, postID, authorID uint, content string) (*model.PostComment, error) {
	var postCount int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).Count(&postCount).Error; err != nil {
		return nil, err
	}
	if postCount == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	comment := model.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// GetComments returns all comments on a post, oldest first, with author profiles
func (s *FeedService) GetComments(ctx context.Context, postID uint) ([]model.CommentWithAuthor, error) {
	var comments []model.PostComment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	result := make([]model.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		result = append(result, model.CommentWithAuthor{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Author:    comment.Author.ToPublicProfile(),
		})
	}
	return result, nil
}

// GetPost loads a single post by id
func (s *FeedService) GetPost(ctx context.Context, postID uint) (*model.Post, error) {
	var post model.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *FeedService) loadProfiles(ctx context.Context, userIDs []uint) (map[uint]model.PublicProfile, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch authors: %w", err)
	}
	profiles := make(map[uint]model.PublicProfile, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].ToPublicProfile()
	}
	return profiles, nil
}
