// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ConfigStore: Application configuration
//   - NoteStore: Note content access and change notifications
//   - QuizInvoker: The quiz action fired on a trigger
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TriggerStore: Trigger history persistence. Without it, fired
//     triggers are not recorded and `recall history` is empty.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
