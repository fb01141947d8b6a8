package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// pollEngine owns the poll arena: creation, one vote per address, and finalization.
type pollEngine struct {
	st sdk.State
}

// create opens a poll at now. duration is copied into the poll.
func (e pollEngine) create(kind PollKind, ownerID uint64, proposal *Amount, duration uint64, now int64) (*Poll, error) {
	if duration == 0 || duration > MaxPollDuration {
		return nil, ErrInvalidDuration
	}
	id, err := nextID(e.st, countPolls)
	if err != nil {
		return nil, err
	}
	p := &Poll{
		ID:        id,
		Kind:      kind,
		OwnerID:   ownerID,
		Proposal:  new(Amount).Set(proposal),
		StartTime: now,
		Duration:  duration,
	}
	if err := savePoll(e.st, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (e pollEngine) get(id uint64) (*Poll, error) {
	p, err := loadPoll(e.st, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("poll %d: %w", id, ErrPollNotFound)
	}
	return p, nil
}

// vote records voter's ballot. Callers check eligibility, the engine only checks the poll.
func (e pollEngine) vote(p *Poll, voter sdk.Address, agree bool, now int64) (*Vote, error) {
	prior, err := loadVote(e.st, p.ID, voter)
	if err != nil {
		return nil, err
	}
	if prior.HasVoted() {
		return nil, ErrAlreadyVoted
	}
	if p.Finalized || !p.IsOpen(now) {
		return nil, ErrPollClosed
	}
	// time 0 is the not-voted sentinel
	v := &Vote{Time: max(now, 1), Weight: voteWeight, Agree: agree}
	if agree {
		p.AgreeCount += v.Weight
	}
	p.VoteCount += v.Weight
	if err := saveVote(e.st, p.ID, voter, v); err != nil {
		return nil, err
	}
	if err := savePoll(e.st, p); err != nil {
		return nil, err
	}
	return v, nil
}

// finalize closes p once its deadline passed and fixes the outcome.
func (e pollEngine) finalize(p *Poll, now int64) error {
	if p.Finalized {
		return ErrAlreadyFinalized
	}
	if p.IsOpen(now) {
		return fmt.Errorf("%w: deadline %d, now %d", ErrTooEarly, p.Deadline(), now)
	}
	p.Finalized = true
	p.Accepted = majorityAccepted(p.AgreeCount, p.VoteCount)
	return savePoll(e.st, p)
}

// majorityAccepted is the acceptance policy: more agreeing than disagreeing weight among the
// votes cast. No votes or a tie rejects.
func majorityAccepted(agree, total uint64) bool {
	return agree > total-agree
}
