// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The keyword table engine lives here: ApplyFilter and ApplySort are pure
// functions over a dataset, and Session ties them to a pagination window
// with load sequencing and the loading-more guard.
package services
