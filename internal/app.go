package internal

import (
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// AppInternal holds everything the CLI needs once the container is wired.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers exposed as subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
