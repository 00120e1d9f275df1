package services

import (
	"fitforge_backend/internal/email"
	"fitforge_backend/internal/events"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	UserService        UserService
	ClassService       ClassService
	ApplicationService ApplicationService
	SlotService        SlotService
	EmailService       email.Provider
	Publisher          events.Publisher
}
