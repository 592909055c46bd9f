// Package approval tracks ERC20 allowance progress for an (owner, token,
// spender) triple as a small explicit state machine. Transitions are driven
// exclusively by confirmed on-chain allowance reads, never by transaction
// acceptance.
package approval

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// State is the allowance progress for one key.
type State int

const (
	// Unknown means the required amount or the on-chain allowance has not
	// been established yet; the action button stays disabled.
	Unknown State = iota
	// NotApproved means the observed allowance is below the required amount.
	NotApproved
	// Pending means an approve was requested and the confirming read has not
	// arrived yet.
	Pending
	// Approved means a confirmed read covers the required amount.
	Approved
)

func (s State) String() string {
	switch s {
	case NotApproved:
		return "NOT_APPROVED"
	case Pending:
		return "PENDING"
	case Approved:
		return "APPROVED"
	}
	return "UNKNOWN"
}

// Key identifies the allowance being tracked.
type Key struct {
	Owner   common.Address
	Token   common.Address
	Spender common.Address
}

// ErrApprovalNotNeeded is returned when an approve is requested in a state
// that does not call for one.
var ErrApprovalNotNeeded = errors.New("approval not needed in current state")

// Machine is the allowance state machine for a single key. It is a plain
// value machine: all transitions are synchronous methods, the async read
// layer feeds it through OnAllowanceObserved. Not safe for concurrent use.
type Machine struct {
	key Key

	// required is the amount about to be spent; nil while parsing is in
	// progress or no amount is typed.
	required *big.Int
	// allowance is the last confirmed on-chain read; nil before the first.
	allowance *big.Int
	// requested is set optimistically when an approve action fires and only
	// cleared by a confirming read or a reset.
	requested bool

	permit *PermitSignature
}

// NewMachine returns a machine for the given key in the Unknown state.
func NewMachine(key Key) *Machine {
	return &Machine{key: key}
}

// Key returns the (owner, token, spender) triple being tracked.
func (m *Machine) Key() Key { return m.key }

// State derives the current state. The observed allowance is authoritative:
// a sufficient read yields Approved regardless of any in-flight approve, an
// insufficient read keeps a requested approval Pending until the read layer
// catches up.
func (m *Machine) State() State {
	if m.required == nil || m.allowance == nil {
		return Unknown
	}
	if m.allowance.Cmp(m.required) >= 0 {
		return Approved
	}
	if m.requested {
		return Pending
	}
	return NotApproved
}

// SetRequirement updates the amount about to be spent. Clearing the amount
// (nil) drops any held permit signature: a signature for a previous amount
// must never silently authorize a different trade.
func (m *Machine) SetRequirement(amount *big.Int) {
	if amount == nil {
		m.required = nil
		m.permit = nil
		return
	}
	m.required = new(big.Int).Set(amount)
}

// OnAllowanceObserved feeds a confirmed on-chain allowance read into the
// machine. A read covering the requirement completes any pending approval.
func (m *Machine) OnAllowanceObserved(allowance *big.Int) {
	if allowance == nil {
		return
	}
	m.allowance = new(big.Int).Set(allowance)
	if m.required != nil && m.allowance.Cmp(m.required) >= 0 {
		m.requested = false
	}
}

// RequestApproval marks an approve action as submitted, moving the machine
// to Pending optimistically. Only valid from NotApproved: an Unknown
// requirement disables the action and Approved/Pending need no approve.
// A failed or rejected approve is reported by simply never observing a
// covering allowance; the caller may keep the machine as-is.
func (m *Machine) RequestApproval() error {
	if m.State() != NotApproved {
		return ErrApprovalNotNeeded
	}
	m.requested = true
	return nil
}

// SetPermit installs an off-chain permit signature. A valid permit bypasses
// the machine entirely: CanSubmit treats it as equivalent to Approved
// without any state transition.
func (m *Machine) SetPermit(sig *PermitSignature) {
	m.permit = sig
}

// Permit returns the held permit signature, nil when none.
func (m *Machine) Permit() *PermitSignature { return m.permit }

// CanSubmit reports whether the gated action may proceed: confirmed
// approval, or a held permit signature. No other combination enables
// submission.
func (m *Machine) CanSubmit() bool {
	return m.State() == Approved || m.permit != nil
}

// Reset re-keys the machine and clears all held state, including any permit
// signature. Called when the input token or spender selection changes.
func (m *Machine) Reset(key Key) {
	m.key = key
	m.required = nil
	m.allowance = nil
	m.requested = false
	m.permit = nil
}
