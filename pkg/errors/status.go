// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

// Status is a request or verification status code.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200

	// BadRequest means the request was invalid.
	BadRequest Status = 400

	// NotFound means a record could not be located.
	NotFound Status = 404

	// Conflict means the request cannot be completed in the current state.
	Conflict Status = 409

	// MalformedTransaction means the transaction is structurally invalid,
	// such as having zero operations.
	MalformedTransaction Status = 441

	// DuplicateSignature means two attached signatures recovered to the same
	// public key.
	DuplicateSignature Status = 442

	// IrrelevantSignature means a provided signature contributed no weight to
	// any satisfied requirement.
	IrrelevantSignature Status = 443

	// MissingOtherAuthority means an authority embedded in an operation was
	// not satisfied by the signature set.
	MissingOtherAuthority Status = 444

	// MissingOwnerAuthority means a required owner-level account authority
	// was not satisfied.
	MissingOwnerAuthority Status = 445

	// MissingActiveAuthority means a required active-level account authority
	// was not satisfied, including its owner fallback.
	MissingActiveAuthority Status = 446

	// InvalidCommitteeApproval means the committee account appeared in the
	// required active accounts while committee participation is disallowed.
	InvalidCommitteeApproval Status = 447

	// InternalError means an internal error occurred.
	InternalError Status = 500

	// UnknownError means an unknown error occurred.
	UnknownError Status = 501
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// IsMissingAuthority returns true if the status is one of the three
// missing-authority kinds.
func (s Status) IsMissingAuthority() bool {
	switch s {
	case MissingOtherAuthority, MissingOwnerAuthority, MissingActiveAuthority:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "bad request"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case MalformedTransaction:
		return "malformed transaction"
	case DuplicateSignature:
		return "duplicate signature"
	case IrrelevantSignature:
		return "irrelevant signature"
	case MissingOtherAuthority:
		return "missing other authority"
	case MissingOwnerAuthority:
		return "missing owner authority"
	case MissingActiveAuthority:
		return "missing active authority"
	case InvalidCommitteeApproval:
		return "invalid committee approval"
	case InternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error implements error.
func (s Status) Error() string { return s.String() }
