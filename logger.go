package trivially

import (
	"github.com/rs/zerolog"

	"github.com/smilemakc/trivially/internal/infrastructure/logger"
)

// SetupLogging installs the package-wide zerolog logger at the given level
// ("debug", "info", "warn", "error"), the same call a composition root like
// cmd/trivially-demo makes before touching the rest of the SDK.
func SetupLogging(level string) zerolog.Logger { return logger.Setup(level) }
