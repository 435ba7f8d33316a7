// Package services contains domain services implementing business logic that
// spans the order aggregate and its viewing context.
//
// The package includes:
//   - VisibilityPolicy: the pure predicate deciding which orders appear in a
//     station's queue for a given viewer
//
// Domain services in this package are stateless and side-effect free. They
// read aggregates through their public surface and never mutate them, so the
// same inputs always produce the same answer.
package services
