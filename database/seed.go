package database

import (
	"fmt"
	"log"
	"os"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedColleges(); err != nil {
		return fmt.Errorf("failed to seed colleges: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedDemoUsers(); err != nil {
		return fmt.Errorf("failed to seed demo users: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedColleges creates an initial set of colleges
func (s *Seeder) SeedColleges() error {
	var count int64
	if err := s.db.Model(&model.College{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Colleges already exist, skipping...")
		return nil
	}

	colleges := []model.College{
		{Name: "Indian Institute of Technology Bombay", Domain: "iitb.ac.in"},
		{Name: "Delhi University", Domain: "du.ac.in"},
		{Name: "Rajiv Gandhi Proudyogiki Vishwavidyalaya", Domain: "rgpv.ac.in"},
	}

	if err := s.db.Create(&colleges).Error; err != nil {
		return err
	}

	log.Printf("Created %d colleges", len(colleges))
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FirstName:    "Admin",
		Role:         model.RoleAdmin,
		IsOnboarded:  true,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user: %s", adminEmail)
	return nil
}

// SeedDemoUsers creates a student and an alumni account for development
func (s *Seeder) SeedDemoUsers() error {
	if os.Getenv("GO_ENV") == "production" {
		log.Println("⏭️  Skipping demo users in production...")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role IN ?", []string{model.RoleStudent, model.RoleAlumni}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Demo users already exist, skipping...")
		return nil
	}

	var college model.College
	if err := s.db.First(&college).Error; err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []model.User{
		{
			Email:        "student@example.com",
			PasswordHash: passwordHash,
			FirstName:    "Asha",
			LastName:     "Verma",
			Role:         model.RoleStudent,
			CollegeID:    &college.ID,
			Department:   "Computer Science",
			Batch:        "2022-2026",
			IsOnboarded:  true,
		},
		{
			Email:        "alumni@example.com",
			PasswordHash: passwordHash,
			FirstName:    "Rahul",
			LastName:     "Mehta",
			Role:         model.RoleAlumni,
			CollegeID:    &college.ID,
			Department:   "Electronics",
			Batch:        "2015-2019",
			IsOnboarded:  true,
		},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	log.Printf("Created %d demo users", len(users))
	return nil
}
