// Package product contains the Product aggregate: a vendor listing whose
// location and delivery radius are inherited from the vendor's store profile
// and drive proximity discovery.
package product
