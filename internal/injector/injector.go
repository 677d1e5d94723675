//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/evader/internal/core/observability/log"
)

func InitializeLogger(level log.Level) *log.Logger {
	wire.Build(log.New)
	return nil
}
