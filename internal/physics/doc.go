// Package physics contains the rigid bodies simulated by freefall: a mass
// falling straight down and a projected mass in the vertical plane, both
// subject to gravity and quadratic air resistance.
//
// State layout follows the dynamo convention: positions first, velocities
// second. Heights and vertical positions are in meters above ground, so a
// run ends when the relevant component reaches zero.
package physics
