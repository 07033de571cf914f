// Package manager implements the user-facing operations of projman on top
// of the project and template registries and the duplicator.
//
// Every operation is a short state machine:
//
//	collecting -> validating -> committing -> done
//	      \             \             \
//	       +-------------+-------------+--> cancelled | failed
//
// Input is gathered through the host while collecting. Nothing is written
// to the registries, the settings or the filesystem before committing, so
// an operation cancelled at any prompt leaves no trace. The outcome is
// returned as a Result and reported through the host: failures with
// NotifyError, successes with NotifyInfo, cancellations not at all.
package manager
