// Package mocks provides mock implementations for testing the gatekeeper ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the gateway interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	verification := mocks.NewMockVerificationGateway(ctrl)
//	verification.EXPECT().VerifyMembership(gomock.Any(), gomock.Any()).Return(result, nil)
//
// Simple hand-written doubles for the local source ports live in the
// session subpackage.
package mocks

// Generate mock for VerificationGateway interface from internal/ports.
// This creates MockVerificationGateway with methods for all VerificationGateway interface methods:
// VerifyMembership
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=verification_gateway_mock.go github.com/spinwheel/gatekeeper/internal/ports VerificationGateway

// Generate mock for LoginGateway interface from internal/ports.
// This creates MockLoginGateway with methods for all LoginGateway interface methods:
// Login
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=login_gateway_mock.go github.com/spinwheel/gatekeeper/internal/ports LoginGateway

// Generate mock for AdminGateway interface from internal/ports.
// This creates MockAdminGateway with methods for all AdminGateway interface methods:
// ListUsers, UpdateUser, DeleteUser, ListChannels, CreateChannel, DeleteChannel,
// ListOrigins, CreateOrigin, DeleteOrigin, ResolveChannel
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=admin_gateway_mock.go github.com/spinwheel/gatekeeper/internal/ports AdminGateway
