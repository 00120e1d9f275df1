package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	UserHandler        *UserHandler
	ClassHandler       *ClassHandler
	ApplicationHandler *ApplicationHandler
	SlotHandler        *SlotHandler
	HealthHandler      *HealthHandler
}
