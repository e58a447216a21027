package chain

import "errors"

// Validation and construction errors. Each group-rejection condition gets
// its own sentinel so callers can tell why a group is unusable.
var (
	// ErrNotSerial indicates the group's joints do not form a single
	// unbranched path (branching, gaps, or disconnected joints).
	ErrNotSerial = errors.New("chain: group is not a serial chain")

	// ErrMimicJoint indicates a group joint is slaved to another joint.
	ErrMimicJoint = errors.New("chain: group contains a mimic joint")

	// ErrNoParentLink indicates the group's root joint has no parent link
	// to anchor the chain.
	ErrNoParentLink = errors.New("chain: root joint has no parent link")

	// ErrUnknownJoint indicates a group references a joint the model does
	// not define.
	ErrUnknownJoint = errors.New("chain: unknown joint in group")

	// ErrNoRoot indicates the link graph has no root link.
	ErrNoRoot = errors.New("chain: tree has no root link")

	// ErrMultipleRoots indicates the link graph is a forest.
	ErrMultipleRoots = errors.New("chain: tree has multiple root links")

	// ErrLinkConflict indicates a link is the child of more than one joint.
	ErrLinkConflict = errors.New("chain: link has multiple parent joints")

	// ErrNoChain indicates no base-to-tip chain exists in the tree.
	ErrNoChain = errors.New("chain: no chain between links")
)
