package database

import (
	"context"
	"database/sql"
	"time"
)

// schema holds idempotent DDL for every table the service uses.  Child
// tables declare ON DELETE CASCADE so referential integrity holds even if a
// row is removed outside the application; the repository layer still deletes
// children explicitly inside its own transaction and does not rely on the
// database cascades alone.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      VARCHAR(64)  NOT NULL PRIMARY KEY,
		password_hash VARCHAR(100) NOT NULL,
		full_name     VARCHAR(128) NOT NULL DEFAULT '',
		email         VARCHAR(128) NOT NULL DEFAULT '',
		role          VARCHAR(16)  NOT NULL DEFAULT 'contractor',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          CHAR(36)     NOT NULL PRIMARY KEY,
		name        VARCHAR(128) NOT NULL,
		description TEXT         NOT NULL,
		owner       VARCHAR(64)  NOT NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_projects_owner FOREIGN KEY (owner) REFERENCES users (username),
		INDEX idx_projects_owner (owner)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS files (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		project_id   CHAR(36)     NOT NULL,
		filename     VARCHAR(255) NOT NULL,
		filetype     VARCHAR(16)  NOT NULL,
		uploaded_by  VARCHAR(64)  NOT NULL,
		storage_path VARCHAR(512) NOT NULL,
		size_bytes   BIGINT       NOT NULL DEFAULT 0,
		created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_files_project FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE,
		UNIQUE KEY uq_files_project_name (project_id, filename),
		INDEX idx_files_project (project_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notes (
		id         CHAR(36)    NOT NULL PRIMARY KEY,
		project_id CHAR(36)    NOT NULL,
		body       TEXT        NOT NULL,
		author     VARCHAR(64) NOT NULL,
		created_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_notes_project FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE,
		INDEX idx_notes_project (project_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS signatures (
		id         CHAR(36)    NOT NULL PRIMARY KEY,
		project_id CHAR(36)    NOT NULL,
		image      MEDIUMTEXT  NOT NULL,
		author     VARCHAR(64) NOT NULL,
		created_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_signatures_project FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE,
		INDEX idx_signatures_project (project_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id          CHAR(36)     NOT NULL PRIMARY KEY,
		project_id  CHAR(36)     NOT NULL,
		author      VARCHAR(64)  NOT NULL,
		work_date   DATE         NOT NULL,
		hours       DECIMAL(6,2) NOT NULL,
		description TEXT         NOT NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_timesheets_project FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE,
		INDEX idx_timesheets_project (project_id, work_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  Every statement is idempotent so
// running it on every startup is safe.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
