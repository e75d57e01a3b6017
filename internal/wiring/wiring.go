// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nativ/internal/adapters/config"
	_ "go.trai.ch/nativ/internal/adapters/logger"
	_ "go.trai.ch/nativ/internal/adapters/shellbackend"
	_ "go.trai.ch/nativ/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/nativ/internal/app"
)
