// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/dzakyfr/portfolio-go/internal/application/editor"
	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/email"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/localstore"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/analytics"
	persistence "github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/content"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
	"github.com/dzakyfr/portfolio-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies.
type Container struct {
	// Infrastructure
	Logger     *logging.ChanneledLogger
	DB         *database.DB
	Cache      *caching.ContentCache
	LocalStore *localstore.Store
	Bus        *messaging.Bus
	StreamHub  *messaging.StreamHub
	Uploader   *media.Uploader
	Email      email.Service

	// Repositories
	AboutRepo       *persistence.AboutRepository
	ContactRepo     *persistence.ContactRepository
	ProjectRepo     *persistence.ProjectRepository
	CertificateRepo *persistence.CertificateRepository
	TechStackRepo   *persistence.TechStackRepository
	MessageRepo     *persistence.MessageRepository
	VisitorRepo     *analytics.VisitorRepository

	// Application services
	SessionService   *services.SessionService
	ToastService     *services.ToastService
	ConfirmService   *services.ConfirmService
	MessageService   *services.MessageService
	AnalyticsService *services.AnalyticsService

	// Editor subsystem
	Coordinator     *editor.Coordinator
	AboutSection    *editor.Controller[content.AboutInfo]
	ContactSection  *editor.Controller[content.ContactInfo]
	ProjectsSection *editor.ListController[content.Project]
	CertsSection    *editor.ListController[content.Certificate]
	TechSection     *editor.ListController[content.TechStackItem]
}

// NewContainer creates and wires all singleton services.
func NewContainer(logger *logging.ChanneledLogger, db *database.DB, store *localstore.Store) *Container {
	c := &Container{
		Logger:     logger,
		DB:         db,
		Cache:      caching.NewContentCache(),
		LocalStore: store,
	}

	c.Bus = messaging.NewBus(logger)
	c.StreamHub = messaging.NewStreamHub(c.Bus, logger)
	c.Uploader = media.NewUploader(config.MediaBasePath, config.MediaBaseURL, config.UploadPrefix, logger)
	c.Email = email.NewService(config.ResendAPIKey, config.EmailFrom, config.EmailFromName, config.NotifyEmailTo, logger)

	c.AboutRepo = persistence.NewAboutRepository(db, c.Cache, logger)
	c.ContactRepo = persistence.NewContactRepository(db, c.Cache, logger)
	c.ProjectRepo = persistence.NewProjectRepository(db, c.Cache, logger)
	c.CertificateRepo = persistence.NewCertificateRepository(db, c.Cache, logger)
	c.TechStackRepo = persistence.NewTechStackRepository(db, c.Cache, logger)
	c.MessageRepo = persistence.NewMessageRepository(db, logger)
	c.VisitorRepo = analytics.NewVisitorRepository(db, logger)

	c.SessionService = services.NewSessionService(services.SessionConfig{
		AdminEmail:    config.AdminEmail,
		AdminPassword: config.AdminPassword,
		JWTSecret:     config.JWTSecret,
		TokenTTL:      config.SessionTokenTTL,
	}, store, c.Bus, logger)
	c.ToastService = services.NewToastService(config.ToastDuration, logger)
	c.ConfirmService = services.NewConfirmService(logger)
	c.MessageService = services.NewMessageService(c.MessageRepo, c.Email, logger)
	c.AnalyticsService = services.NewAnalyticsService(c.VisitorRepo, logger)

	deps := editor.ControllerDeps{
		Session:  c.SessionService,
		Toasts:   c.ToastService,
		Confirms: c.ConfirmService,
		Uploader: c.Uploader,
		Bus:      c.Bus,
		Logger:   logger,
	}

	c.AboutSection = editor.NewController(
		"about",
		editor.BatchedExplicitSave,
		c.AboutRepo.Get,
		c.AboutRepo.Upsert,
		editor.DefaultAbout(),
		deps,
	)
	c.ContactSection = editor.NewController(
		"contact",
		editor.AutoSaveOnBlur,
		c.ContactRepo.Get,
		c.ContactRepo.Update,
		editor.DefaultContact(),
		deps,
	)
	c.ProjectsSection = editor.NewListController("projects", editor.ListRepo[content.Project]{
		Load:   c.ProjectRepo.FindAll,
		Create: c.ProjectRepo.Create,
		Update: c.ProjectRepo.Update,
		Delete: c.ProjectRepo.Delete,
		ID:     func(p content.Project) *int64 { return p.ID },
		Clone:  content.Project.Clone,
	}, deps)
	c.CertsSection = editor.NewListController("certificates", editor.ListRepo[content.Certificate]{
		Load:   c.CertificateRepo.FindAll,
		Create: c.CertificateRepo.Create,
		Update: c.CertificateRepo.Update,
		Delete: c.CertificateRepo.Delete,
		ID:     func(cert content.Certificate) *int64 { return cert.ID },
		Clone:  content.Certificate.Clone,
	}, deps)
	c.TechSection = editor.NewListController("techstack", editor.ListRepo[content.TechStackItem]{
		Load:   c.TechStackRepo.FindAll,
		Create: c.TechStackRepo.Create,
		Update: c.TechStackRepo.Update,
		Delete: c.TechStackRepo.Delete,
		ID:     func(t content.TechStackItem) *int64 { return t.ID },
		Clone:  content.TechStackItem.Clone,
	}, deps)

	c.Coordinator = editor.NewCoordinator(c.SessionService, c.ToastService, c.ConfirmService, c.Bus, logger)
	c.Coordinator.Register(c.AboutSection)
	c.Coordinator.Register(c.ContactSection)
	c.Coordinator.Register(c.ProjectsSection)
	c.Coordinator.Register(c.CertsSection)
	c.Coordinator.Register(c.TechSection)

	return c
}
