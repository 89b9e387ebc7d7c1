package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/taskflow/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Task{},
		&model.TaskAssignee{},
		&model.Subtask{},
		&model.Asset{},
		&model.ImportantTask{},
		&model.Notification{},
		&model.Note{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// createCustomIndexes creates indexes GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// An asset belongs to a task or a project, never both and never neither
	if err := db.Exec(`ALTER TABLE assets DROP CONSTRAINT IF EXISTS chk_asset_single_owner`).Error; err != nil {
		return err
	}
	if err := db.Exec(`ALTER TABLE assets ADD CONSTRAINT chk_asset_single_owner CHECK ((task_id IS NULL) <> (project_id IS NULL))`).Error; err != nil {
		return err
	}

	// Partial index to serve the overdue filter
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date) WHERE due_date IS NOT NULL`).Error; err != nil {
		return err
	}

	// Subtask lookups during assignment clears hit (task_id, assignee_id)
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_subtasks_task_assignee ON subtasks (task_id, assignee_id)`).Error; err != nil {
		return err
	}

	return nil
}
