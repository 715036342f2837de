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
//   - KeywordSource: Produces the keyword batch for a category (synthetic or API)
//   - CategoryCatalog: Supplies the static category taxonomy
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DatasetCache: Stores loaded datasets (memory, SQLite or Redis). Without it,
//     every category selection goes to the KeywordSource.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
