package ports

import "context"

// ToolchainVerifier gates native build units on toolchain presence.
//
// Verify is evaluated lazily, the first time any build unit is about to run.
// Implementations must memoize the outcome: verification executes at most once
// per invocation, is safe to call concurrently, and every caller observes the
// same success or failure.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainVerifier interface {
	Verify(ctx context.Context) error
}
