package commands

import (
	"errors"

	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrRefreshOrdersCommandIsNotConstructed = errors.New(
		"RefreshOrdersCommand must be created via NewRefreshOrdersCommand constructor",
	)
)

// RefreshOrdersCommand reloads the working copy from the store.
type RefreshOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshOrdersCommand() RefreshOrdersCommand {
	return RefreshOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RefreshOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrdersCommandIsNotConstructed)
}
