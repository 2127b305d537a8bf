// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// OperationType identifies the kind of an operation.
type OperationType uint8

const (
	OperationTypeTransfer OperationType = iota + 1
	OperationTypeAccountUpdate
	OperationTypeCustom
	OperationTypeBalanceClaim
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeTransfer:
		return "transfer"
	case OperationTypeAccountUpdate:
		return "accountUpdate"
	case OperationTypeCustom:
		return "custom"
	case OperationTypeBalanceClaim:
		return "balanceClaim"
	default:
		return "unknown"
	}
}

// RequiredAuthorities accumulates the authorization requirements of a set of
// operations: accounts whose active or owner authority must sign, and
// authorities embedded directly in operations.
type RequiredAuthorities struct {
	Active AccountSet
	Owner  AccountSet
	Other  []*Authority
}

func NewRequiredAuthorities() *RequiredAuthorities {
	return &RequiredAuthorities{Active: AccountSet{}, Owner: AccountSet{}}
}

// Operation is one step of a transaction.
type Operation interface {
	Type() OperationType

	// Validate checks the operation's own structural contract.
	Validate() error

	// RequiredAuthorities adds the operation's authorization requirements to
	// the accumulator.
	RequiredAuthorities(req *RequiredAuthorities, ignoreCustomRequiredAuths bool)

	marshalBinary(w *binWriter)
}

// Transfer moves tokens between accounts. Requires the active authority of
// the source account.
type Transfer struct {
	From   AccountID `json:"from"`
	To     AccountID `json:"to"`
	Amount uint64    `json:"amount"`
}

func (op *Transfer) Type() OperationType { return OperationTypeTransfer }

func (op *Transfer) Validate() error {
	if op.Amount == 0 {
		return errors.MalformedTransaction.With("transfer amount must be positive")
	}
	if op.From == op.To {
		return errors.MalformedTransaction.With("transfer source and destination are the same account")
	}
	return nil
}

func (op *Transfer) RequiredAuthorities(req *RequiredAuthorities, _ bool) {
	req.Active.Add(op.From)
}

func (op *Transfer) marshalBinary(w *binWriter) {
	w.u8(byte(op.Type()))
	w.u64(uint64(op.From))
	w.u64(uint64(op.To))
	w.u64(op.Amount)
}

// AccountUpdate replaces an account's authorities. Changing the owner
// authority requires the owner authority; anything else requires active.
type AccountUpdate struct {
	Account   AccountID  `json:"account"`
	NewOwner  *Authority `json:"new_owner,omitempty"`
	NewActive *Authority `json:"new_active,omitempty"`
}

func (op *AccountUpdate) Type() OperationType { return OperationTypeAccountUpdate }

func (op *AccountUpdate) Validate() error {
	if op.NewOwner == nil && op.NewActive == nil {
		return errors.MalformedTransaction.With("account update changes nothing")
	}
	for _, a := range []*Authority{op.NewOwner, op.NewActive} {
		if a == nil {
			continue
		}
		if err := a.Validate(); err != nil {
			return errors.MalformedTransaction.Wrap(err)
		}
	}
	return nil
}

func (op *AccountUpdate) RequiredAuthorities(req *RequiredAuthorities, _ bool) {
	if op.NewOwner != nil {
		req.Owner.Add(op.Account)
	} else {
		req.Active.Add(op.Account)
	}
}

func (op *AccountUpdate) marshalBinary(w *binWriter) {
	w.u8(byte(op.Type()))
	w.u64(uint64(op.Account))
	for _, a := range []*Authority{op.NewOwner, op.NewActive} {
		if a == nil {
			w.u8(0)
			continue
		}
		w.u8(1)
		w.authority(a)
	}
}

// Custom carries opaque payload data. It requires the active authority of the
// payer and of every account it names, though the latter can be ignored by
// caller policy or satisfied by a custom authority.
type Custom struct {
	Payer         AccountID   `json:"payer"`
	RequiredAuths []AccountID `json:"required_auths,omitempty"`
	Data          []byte      `json:"data,omitempty"`
}

func (op *Custom) Type() OperationType { return OperationTypeCustom }

func (op *Custom) Validate() error {
	return nil
}

func (op *Custom) RequiredAuthorities(req *RequiredAuthorities, ignoreCustomRequiredAuths bool) {
	req.Active.Add(op.Payer)
	if ignoreCustomRequiredAuths {
		return
	}
	for _, id := range op.RequiredAuths {
		req.Active.Add(id)
	}
}

func (op *Custom) marshalBinary(w *binWriter) {
	w.u8(byte(op.Type()))
	w.u64(uint64(op.Payer))
	w.uvarint(uint64(len(op.RequiredAuths)))
	for _, id := range op.RequiredAuths {
		w.u64(uint64(id))
	}
	w.bytes(op.Data)
}

// BalanceClaim redeems a genesis balance locked under an embedded authority.
// The embedded authority must be satisfied directly by the signature set.
type BalanceClaim struct {
	Deposit AccountID `json:"deposit"`
	Owner   Authority `json:"owner"`
	Total   uint64    `json:"total"`
}

func (op *BalanceClaim) Type() OperationType { return OperationTypeBalanceClaim }

func (op *BalanceClaim) Validate() error {
	if op.Total == 0 {
		return errors.MalformedTransaction.With("balance claim total must be positive")
	}
	if err := op.Owner.Validate(); err != nil {
		return errors.MalformedTransaction.Wrap(err)
	}
	return nil
}

func (op *BalanceClaim) RequiredAuthorities(req *RequiredAuthorities, _ bool) {
	req.Active.Add(op.Deposit)
	req.Other = append(req.Other, &op.Owner)
}

func (op *BalanceClaim) marshalBinary(w *binWriter) {
	w.u8(byte(op.Type()))
	w.u64(uint64(op.Deposit))
	w.authority(&op.Owner)
	w.u64(op.Total)
}

// NewOperation returns a zero operation of the given type, for unmarshaling.
func NewOperation(t OperationType) (Operation, error) {
	switch t {
	case OperationTypeTransfer:
		return new(Transfer), nil
	case OperationTypeAccountUpdate:
		return new(AccountUpdate), nil
	case OperationTypeCustom:
		return new(Custom), nil
	case OperationTypeBalanceClaim:
		return new(BalanceClaim), nil
	default:
		return nil, errors.BadRequest.WithFormat("unknown operation type %d", t)
	}
}

// OperationTypeByName resolves an operation type from its name.
func OperationTypeByName(s string) (OperationType, error) {
	for _, t := range []OperationType{
		OperationTypeTransfer,
		OperationTypeAccountUpdate,
		OperationTypeCustom,
		OperationTypeBalanceClaim,
	} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, errors.BadRequest.WithFormat("unknown operation type %q", s)
}
