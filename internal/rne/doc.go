// Package rne implements recursive Newton-Euler inverse dynamics for
// serial chains: given a joint-space motion and external segment wrenches,
// it returns the joint torques required to realize that motion under
// gravity. It is the chain dynamics engine behind the payload solver and
// is usable standalone.
package rne
