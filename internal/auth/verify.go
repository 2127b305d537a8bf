// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth

import (
	"fmt"

	"gitlab.com/meridianchain/meridian/pkg/errors"
	"gitlab.com/meridianchain/meridian/protocol"
)

// CustomAuthorityLookup returns the programmable authorities applicable to an
// (account, operation) pair. Implementations should record authorities they
// rejected, with a reason, for diagnostics.
type CustomAuthorityLookup func(protocol.AccountID, protocol.Operation, *RejectionLog) []*protocol.Authority

// RejectionLog accumulates the reasons custom authorities were rejected
// during one verification pass. It is attached to failures so operators can
// see why a custom authority path did not help, and is populated even when
// verification ultimately succeeds.
type RejectionLog struct {
	Entries []Rejection
}

// Rejection records one rejected custom authority.
type Rejection struct {
	Account   protocol.AccountID
	Authority *protocol.Authority
	Reason    string
}

func (l *RejectionLog) Add(account protocol.AccountID, auth *protocol.Authority, reason string) {
	l.Entries = append(l.Entries, Rejection{Account: account, Authority: auth, Reason: reason})
}

// Options configures a verification pass.
type Options struct {
	GetActive AuthorityGetter
	GetOwner  AuthorityGetter

	// GetCustom is consulted before the standard active-authority check. May
	// be nil.
	GetCustom CustomAuthorityLookup

	// AllowNonImmediateOwner permits an owner authority to satisfy a
	// requirement reached through delegation, not just at the top level.
	AllowNonImmediateOwner bool

	// IgnoreCustomRequiredAuths drops the account requirements custom
	// operations declare for themselves.
	IgnoreCustomRequiredAuths bool

	// AllowCommittee permits the committee account among required active
	// accounts.
	AllowCommittee bool

	// MaxRecursion bounds the delegation search depth. Zero disables
	// delegation entirely.
	MaxRecursion uint32

	// ActiveApprovals and OwnerApprovals are accounts the caller asserts are
	// approved through an out-of-band mechanism, such as a proposal's prior
	// approvals.
	ActiveApprovals []protocol.AccountID
	OwnerApprovals  []protocol.AccountID
}

// AuthorityError is a verification failure. It wraps one of the
// authorization status codes and carries the offending account or authority,
// the signature set, and the custom-authority rejection log.
type AuthorityError struct {
	Status     errors.Status
	Account    protocol.AccountID
	Authority  *protocol.Authority
	Signatures []protocol.PublicKey
	Rejections []Rejection
}

func (e *AuthorityError) Error() string {
	switch e.Status {
	case errors.MissingOtherAuthority:
		return fmt.Sprintf("missing authority embedded in operation (%d signatures provided)", len(e.Signatures))
	case errors.MissingOwnerAuthority:
		return fmt.Sprintf("missing owner authority of account %d", e.Account)
	case errors.MissingActiveAuthority:
		return fmt.Sprintf("missing active authority of account %d", e.Account)
	case errors.IrrelevantSignature:
		return "unnecessary signature(s) detected"
	case errors.InvalidCommitteeApproval:
		return "committee account may only propose transactions"
	default:
		return e.Status.String()
	}
}

func (e *AuthorityError) Unwrap() error { return e.Status }

// Verify checks that the signature-implied keys collectively satisfy every
// authority the operations require. On success every signature was necessary;
// a signature that contributed to no requirement is an error.
func Verify(ops []protocol.Operation, sigKeys []protocol.PublicKey, opts Options) error {
	rejected := new(RejectionLog)
	err := verify(ops, sigKeys, opts, rejected)
	recordVerification(err)
	if err != nil {
		if e, ok := err.(*AuthorityError); ok {
			e.Rejections = rejected.Entries
		}
	}
	return err
}

func verify(ops []protocol.Operation, sigKeys []protocol.PublicKey, opts Options, rejected *RejectionLog) error {
	s := NewState(sigKeys, nil, opts.GetActive, opts.GetOwner, opts.AllowNonImmediateOwner, opts.MaxRecursion)
	for _, id := range opts.ActiveApprovals {
		s.Approve(id)
	}
	ownerApprovals := protocol.AccountSet{}
	for _, id := range opts.OwnerApprovals {
		s.Approve(id)
		ownerApprovals.Add(id)
	}

	approvedByCustomAuthority := func(id protocol.AccountID, op protocol.Operation) bool {
		if opts.GetCustom == nil {
			return false
		}
		for _, auth := range opts.GetCustom(id, op, rejected) {
			if s.CheckAuthority(auth, 0) {
				return true
			}
			rejected.Add(id, auth, "not satisfied by the provided signatures")
		}
		return false
	}

	requiredActive := protocol.AccountSet{}
	requiredOwner := protocol.AccountSet{}
	var other []*protocol.Authority

	for _, op := range ops {
		req := protocol.NewRequiredAuthorities()
		op.RequiredAuthorities(req, opts.IgnoreCustomRequiredAuths)

		// An account whose custom authority is satisfied has its active
		// requirement met for this operation only
		for _, id := range req.Active.Sorted() {
			if !approvedByCustomAuthority(id, op) {
				requiredActive.Add(id)
			}
		}
		for id := range req.Owner {
			requiredOwner.Add(id)
		}
		other = append(other, req.Other...)
	}

	if !opts.AllowCommittee && requiredActive.Has(protocol.CommitteeAccount) {
		return &AuthorityError{Status: errors.InvalidCommitteeApproval, Account: protocol.CommitteeAccount, Signatures: sigKeys}
	}

	for _, auth := range other {
		if !s.CheckAuthority(auth, 0) {
			return &AuthorityError{Status: errors.MissingOtherAuthority, Authority: auth, Signatures: sigKeys}
		}
	}

	for _, id := range requiredOwner.Sorted() {
		if ownerApprovals.Has(id) || s.CheckAuthority(opts.GetOwner(id), 0) {
			continue
		}
		return &AuthorityError{Status: errors.MissingOwnerAuthority, Account: id, Authority: opts.GetOwner(id), Signatures: sigKeys}
	}

	for _, id := range requiredActive.Sorted() {
		// The owner authority is an unconditional fallback at the top level
		if s.CheckAccount(id) || s.CheckAuthority(opts.GetOwner(id), 0) {
			continue
		}
		return &AuthorityError{Status: errors.MissingActiveAuthority, Account: id, Authority: opts.GetActive(id), Signatures: sigKeys}
	}

	if s.RemoveUnusedSignatures() {
		return &AuthorityError{Status: errors.IrrelevantSignature, Signatures: sigKeys}
	}
	return nil
}

// VerifyTransaction validates the transaction, recovers its signature keys,
// and verifies authority.
func VerifyTransaction(tx *protocol.SignedTransaction, chainID protocol.ChainID, opts Options) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	sigKeys, err := tx.SignatureKeys(chainID)
	if err != nil {
		return err
	}
	return Verify(tx.Operations, sigKeys, opts)
}
