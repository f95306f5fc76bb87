// Package kernel evaluates the closed-form gravity and total-field
// magnetic response of a single axis-aligned rectangular prism at a
// single observation point.
//
// All prism coordinates are offsets from the observation point with x
// pointing east, y pointing north and z pointing down, so a prism
// buried below the observation point has z1 > 0. Gravity follows the
// Nagy corner-sum formula, magnetics the Bhattacharyya semi-infinite
// prism formula evaluated at the top and bottom depths.
package kernel
