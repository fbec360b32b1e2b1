package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Roster RosterConfig
	AI     AIConfig
}

// Dependencies are the external collaborators every service is built from
type Dependencies struct {
	Repo      repositories.Repository
	Verifier  identity.Verifier
	Generator ai.Generator
	Publisher events.EventPublisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	// Service instances
	rosterService RosterService
	userService   UserService
	courseService CourseService
	tutorService  TutorService
	careerService CareerService
	exportService ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Generator == nil {
		deps.Generator = ai.Unconfigured{}
	}
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.deps.Repo == nil || sm.deps.Verifier == nil || sm.deps.Logger == nil {
		return fmt.Errorf("failed to initialize services: repository, verifier and logger are required")
	}

	d := sm.deps
	d.Logger.Info("Initializing service manager")

	sm.rosterService = NewRosterService(d.Repo, d.Verifier, d.Logger, sm.config.Roster)
	sm.userService = NewUserService(d.Repo, d.Verifier, d.Publisher, d.Logger, d.Validator)
	sm.courseService = NewCourseService(d.Repo, d.Verifier, d.Publisher, d.Logger, d.Validator)
	sm.tutorService = NewTutorService(d.Generator, d.Logger, d.Validator, sm.config.AI)
	sm.careerService = NewCareerService(d.Repo, d.Verifier, d.Generator, d.Logger, d.Validator, sm.config.AI)
	sm.exportService = NewExportService(sm.rosterService, d.Logger)

	sm.initialized = true
	d.Logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) mustBeReady(name string, svc interface{}) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if svc == nil {
		panic(name + " service not initialized")
	}
}

// Service getters
func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("roster", sm.rosterService)
	return sm.rosterService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("user", sm.userService)
	return sm.userService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("course", sm.courseService)
	return sm.courseService
}

func (sm *serviceManager) Tutor() TutorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("tutor", sm.tutorService)
	return sm.tutorService
}

func (sm *serviceManager) Career() CareerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("career", sm.careerService)
	return sm.careerService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("export", sm.exportService)
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")
	return nil
}
