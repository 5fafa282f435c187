// Package domain defines the core entities, repository interfaces, and
// sentinel errors shared by the bot and API processes.
//
// The domain layer has no dependencies on transport or storage packages;
// repositories are implemented in internal/database and injected at startup.
package domain
