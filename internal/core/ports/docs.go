// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the outbound mailer.
// These interfaces establish dependency inversion and testability.
package ports
