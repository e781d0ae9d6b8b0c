package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/fetchbump/internal"
	"github.com/rios0rios0/fetchbump/internal/infrastructure/controllers"
)

func injectApp() (*internal.AppInternal, *controllers.BumpController) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	var bumpController *controllers.BumpController
	if err := container.Invoke(func(ai *internal.AppInternal, bc *controllers.BumpController) {
		appInternal = ai
		bumpController = bc
	}); err != nil {
		panic(err)
	}

	return appInternal, bumpController
}
