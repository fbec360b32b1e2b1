package services

import "context"

// ServiceManager owns every service and their shared dependencies
type ServiceManager interface {
	// Core service getters
	Roster() RosterService
	User() UserService
	Course() CourseService
	Tutor() TutorService
	Career() CareerService

	// Additional service getters
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
