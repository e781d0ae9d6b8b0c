package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewBumpCommand); err != nil {
		return err
	}
	if err := container.Provide(NewPublishCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRemoteCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *BumpCommand) Bump {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PublishCommand) Publish {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RemoteCommand) Remote {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
