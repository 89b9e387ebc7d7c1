package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/taskflow/internal/adapter/repository"
	domainRepo "github.com/abubakar1702/taskflow/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Tx            domainRepo.TxManager
	User          domainRepo.UserRepository
	Project       domainRepo.ProjectRepository
	Member        domainRepo.MemberRepository
	Task          domainRepo.TaskRepository
	Subtask       domainRepo.SubtaskRepository
	Asset         domainRepo.AssetRepository
	ImportantTask domainRepo.ImportantTaskRepository
	Notification  domainRepo.NotificationRepository
	Note          domainRepo.NoteRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Tx:            repository.NewTxManager(db, logger),
		User:          repository.NewUserRepository(db, logger),
		Project:       repository.NewProjectRepository(db, logger),
		Member:        repository.NewMemberRepository(db, logger),
		Task:          repository.NewTaskRepository(db, logger),
		Subtask:       repository.NewSubtaskRepository(db, logger),
		Asset:         repository.NewAssetRepository(db, logger),
		ImportantTask: repository.NewImportantTaskRepository(db, logger),
		Notification:  repository.NewNotificationRepository(db, logger),
		Note:          repository.NewNoteRepository(db, logger),
	}
}
