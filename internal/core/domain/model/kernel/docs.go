// Package kernel contains the shared value objects of the marketplace domain:
// UUID identifiers and geographic points. Both are immutable, validated at
// construction, and guarded against zero-value use.
package kernel
