// Package topology classifies the pairwise spatial relations between
// placed bricks and folds them into the two terminal artifacts the
// external geometry and solver tooling consume: the widen map (which
// cavity positions must be enlarged) and the contact list (which surface
// pairs need a contact interaction).
package topology
