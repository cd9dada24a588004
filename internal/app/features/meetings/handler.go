// internal/app/features/meetings/handler.go
package meetings

import (
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/engine"
)

// Handler is the shared dependency container for the meetings feature.
// Every meeting endpoint goes through the lifecycle engine; the handlers
// only translate HTTP to engine operations and engine errors back to the
// JSON error taxonomy.
type Handler struct {
	Engine *engine.Engine
	Log    *zap.Logger
}

// NewHandler constructs a meetings Handler. Called from bootstrap's
// BuildHandler once the engine is wired.
func NewHandler(eng *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		Engine: eng,
		Log:    logger,
	}
}
