// Package bot contains the interaction dispatch core: the command
// registry, the per-user cooldown ledger, the dispatcher that resolves
// and executes slash commands with error isolation, and the event
// router binding gateway events to in-process logic.
//
// The registry is populated once at startup and read-only afterwards.
// The cooldown ledger is the only mutable shared structure; all of its
// mutation goes through TryConsume, which is atomic per
// (command, user) key.
package bot
