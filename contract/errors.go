package contract

import "errors"

// Every failure is one of four kinds. Test the kind with errors.Is(err, ErrPolicyViolation) or the
// exact condition with errors.Is(err, ErrNotMember).
var (
	ErrPolicyViolation       = errors.New("policy violation")
	ErrStateViolation        = errors.New("state violation")
	ErrResourceViolation     = errors.New("resource violation")
	ErrAuthenticityViolation = errors.New("authenticity violation")
)

// kindError is a condition that unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// policy
var (
	ErrNotManager      = newError(ErrPolicyViolation, "caller is not a manager")
	ErrNotMember       = newError(ErrPolicyViolation, "caller is not a member")
	ErrNotBeneficiary  = newError(ErrPolicyViolation, "caller is not the beneficiary")
	ErrInvalidAmount   = newError(ErrPolicyViolation, "amount must be greater than zero")
	ErrInvalidDuration = newError(ErrPolicyViolation, "poll duration must be set and in range")
	ErrInvalidAddress  = newError(ErrPolicyViolation, "invalid address")
)

// state
var (
	ErrNotInitialized     = newError(ErrStateViolation, "contract not initialized")
	ErrAlreadyInitialized = newError(ErrStateViolation, "contract already initialized")
	ErrAlreadyVoted       = newError(ErrStateViolation, "already voted")
	ErrPollClosed         = newError(ErrStateViolation, "poll closed")
	ErrTooEarly           = newError(ErrStateViolation, "poll still running")
	ErrAlreadyFinalized   = newError(ErrStateViolation, "poll already finalized")
	ErrRuleNotEnabled     = newError(ErrStateViolation, "reward rule not enabled")
	ErrNotApproved        = newError(ErrStateViolation, "reward not approved")
	ErrAlreadyWithdrawn   = newError(ErrStateViolation, "reward already withdrawn")
)

// resource
var (
	ErrInsufficientTreasuryBalance = newError(ErrResourceViolation, "insufficient treasury balance")
	ErrInsufficientAllowance       = newError(ErrResourceViolation, "insufficient allowance")
	ErrIndexOutOfRange             = newError(ErrResourceViolation, "index out of range")
	ErrPollNotFound                = newError(ErrResourceViolation, "poll not found")
	ErrRewardNotFound              = newError(ErrResourceViolation, "reward not found")
	ErrTokenUnavailable            = newError(ErrResourceViolation, "token unavailable")
)

// authenticity
var (
	ErrInvalidSignature = newError(ErrAuthenticityViolation, "invalid signature")
	ErrNonceReused      = newError(ErrAuthenticityViolation, "nonce already used")
)
