package services

import (
	"context"
	"fmt"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"gorm.io/gorm"
)

// CollegeService owns the college directory and per-college stats
type CollegeService struct {
	db *gorm.DB
}

// NewCollegeService creates a new college service
func NewCollegeService(db *gorm.DB) *CollegeService {
	return &CollegeService{db: db}
}

// ListColleges returns all colleges ordered by name
func (s *CollegeService) ListColleges(ctx context.Context) ([]model.College, error) {
	var colleges []model.College
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&colleges).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch colleges: %w", err)
	}
	return colleges, nil
}

// GetCollege loads a single college by id
func (s *CollegeService) GetCollege(ctx context.Context, collegeID uint) (*model.College, error) {
	var college model.College
	if err := s.db.WithContext(ctx).First(&college, collegeID).Error; err != nil {
		return nil, err
	}
	return &college, nil
}

// GetCollegeStats returns member and post counts for a college. The role
// split comes out of one conditional aggregation over users rather than a
// query per role.
func (s *CollegeService) GetCollegeStats(ctx context.Context, collegeID uint) (*model.CollegeStats, error) {
	var collegeCount int64
	if err := s.db.WithContext(ctx).Model(&model.College{}).Where("id = ?", collegeID).Count(&collegeCount).Error; err != nil {
		return nil, err
	}
	if collegeCount == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var stats model.CollegeStats
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select(`COUNT(CASE WHEN role = ? THEN 1 END) AS students_count,
			COUNT(CASE WHEN role = ? THEN 1 END) AS alumni_count,
			(SELECT COUNT(*) FROM posts WHERE posts.college_id = ? AND posts.deleted_at IS NULL) AS total_posts`,
			model.RoleStudent, model.RoleAlumni, collegeID).
		Where("college_id = ?", collegeID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute college stats: %w", err)
	}
	return &stats, nil
}
