// Package services contains stateless domain services that operate across
// aggregates. ProximityIndex implements the radius search shared by product
// and order discovery.
package services
