package database

import (
	"log"
	"strings"
)

func (s *PostgreSQLStore) Initialize() error {
	// Init all enums
	log.Println("Initializing PostgresSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	// Init all tables
	log.Println("Initializing PostgresSQL Database.", "Initializing Tables")
	if err := s.InitTables(); err != nil {
		return err
	}
	return nil
}

func (s *PostgreSQLStore) InitEnums() error {
	// Init all the enums
	query := `
		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
				CREATE TYPE user_role AS ENUM ('student', 'alumni', 'admin');
           	END IF;
		END $$;

		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'post_category') THEN
				CREATE TYPE post_category AS ENUM ('jobs', 'advice', 'memories', 'events', 'general');
           	END IF;
		END $$;

		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'attendance_status') THEN
				CREATE TYPE attendance_status AS ENUM ('going', 'maybe', 'not_going');
           	END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

func (s *PostgreSQLStore) InitTables() error {
	//
	// Init all the tables
	//

	// colleges table
	colleges_table := `
	CREATE TABLE IF NOT EXISTS colleges (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        name VARCHAR(255) NOT NULL,
        domain VARCHAR(255),
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        deleted_at TIMESTAMP
	);
	`

	// users table
	users_table := `
	CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        email VARCHAR(512) UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        first_name VARCHAR(100),
        last_name VARCHAR(100),
        profile_image VARCHAR(512),
        role user_role DEFAULT 'student',
        college_id INTEGER REFERENCES colleges(id),
        department VARCHAR(255),
        batch VARCHAR(50),
        bio TEXT,
        location VARCHAR(255),
        is_onboarded BOOLEAN DEFAULT FALSE,
        token_version INTEGER DEFAULT 0,
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        deleted_at TIMESTAMP
	);
	`

	// posts table
	posts_table := `
	CREATE TABLE IF NOT EXISTS posts (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
        title VARCHAR(255),
        content TEXT NOT NULL,
        category post_category DEFAULT 'general',
        image_url VARCHAR(512),
        location VARCHAR(255),
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        deleted_at TIMESTAMP
	);
	`

	// post_likes table: one row per (post, user), existence means "liked"
	post_likes_table := `
	CREATE TABLE IF NOT EXISTS post_likes (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
        user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        created_at TIMESTAMP DEFAULT NOW(),
        CONSTRAINT idx_post_likes_post_user UNIQUE (post_id, user_id)
	);
	`

	// post_comments table
	post_comments_table := `
	CREATE TABLE IF NOT EXISTS post_comments (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
        author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        content TEXT NOT NULL,
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW()
	);
	`

	// events table
	events_table := `
	CREATE TABLE IF NOT EXISTS events (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        title VARCHAR(255) NOT NULL,
        description TEXT,
        start_date TIMESTAMP NOT NULL,
        end_date TIMESTAMP,
        location VARCHAR(255),
        category VARCHAR(50) NOT NULL DEFAULT 'general',
        is_virtual BOOLEAN DEFAULT FALSE,
        meeting_link VARCHAR(500),
        max_attendees INTEGER,
        organizer_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        deleted_at TIMESTAMP
	);
	`

	// event_attendees table: latest status per (event, user), upsert target
	event_attendees_table := `
	CREATE TABLE IF NOT EXISTS event_attendees (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
        user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        status attendance_status NOT NULL DEFAULT 'going',
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        CONSTRAINT idx_event_attendees_event_user UNIQUE (event_id, user_id)
	);
	`

	// user_notifications table
	user_notifications_table := `
	CREATE TABLE IF NOT EXISTS user_notifications (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        type VARCHAR(20) NOT NULL,
        category VARCHAR(30) NOT NULL,
        title VARCHAR(255) NOT NULL,
        message TEXT,
        read BOOLEAN DEFAULT FALSE,
        metadata JSONB,
        created_at TIMESTAMP DEFAULT NOW(),
        updated_at TIMESTAMP DEFAULT NOW(),
        deleted_at TIMESTAMP
	);
	`

	// jwt_token_blacklist table
	jwt_token_blacklist_table := `
	CREATE TABLE IF NOT EXISTS jwt_token_blacklist (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        token VARCHAR(64) NOT NULL,
        user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        reason VARCHAR(100),
        expires_at TIMESTAMP NOT NULL,
        created_at TIMESTAMP DEFAULT NOW()
	);
	`

	// cron_job_logs table
	cron_job_logs_table := `
	CREATE TABLE IF NOT EXISTS cron_job_logs (
        id INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
        job_name VARCHAR(100) NOT NULL,
        status VARCHAR(20) NOT NULL,
        started_at TIMESTAMP NOT NULL,
        completed_at TIMESTAMP,
        duration INTEGER,
        message TEXT,
        error_msg TEXT,
        metadata JSONB,
        created_at TIMESTAMP DEFAULT NOW()
	);
	`

	all_tables := strings.Join([]string{colleges_table, users_table, posts_table, post_likes_table, post_comments_table, events_table, event_attendees_table, user_notifications_table, jwt_token_blacklist_table, cron_job_logs_table}, "")

	_, err := s.db.Exec(all_tables)
	return err
}
