// Package order contains the Order aggregate and its Status state machine:
// pending → processing → out_for_delivery → delivered, with a vendor-side
// cancellation branch. The delivery-partner exclusivity rule is expressed
// here and enforced race-free by the storage layer's conditional write.
package order
