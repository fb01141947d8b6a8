package contract

import (
	"github.com/CosmWasm/tinyjson/jwriter"

	"okinoko_rewards/sdk"
)

// Hand written tinyjson marshalers for the records the CLI prints. Amounts are decimal strings
// since they do not fit a JSON number.

// JSONObject writes the separators so marshalers only list fields. The setters chain so the CLI
// can build one-off result objects the same way.
type JSONObject struct {
	w *jwriter.Writer
	n int
}

func BeginObject(w *jwriter.Writer) *JSONObject {
	w.RawByte('{')
	return &JSONObject{w: w}
}

func (o *JSONObject) key(name string) {
	if o.n > 0 {
		o.w.RawByte(',')
	}
	o.n++
	o.w.String(name)
	o.w.RawByte(':')
}

func (o *JSONObject) Str(name, v string) *JSONObject {
	o.key(name)
	o.w.String(v)
	return o
}

func (o *JSONObject) U64(name string, v uint64) *JSONObject {
	o.key(name)
	o.w.Uint64(v)
	return o
}

func (o *JSONObject) I64(name string, v int64) *JSONObject {
	o.key(name)
	o.w.Int64(v)
	return o
}

func (o *JSONObject) Bool(name string, v bool) *JSONObject {
	o.key(name)
	o.w.Bool(v)
	return o
}

func (o *JSONObject) Amount(name string, v *Amount) *JSONObject {
	if v == nil {
		return o.Str(name, "0")
	}
	return o.Str(name, v.Dec())
}

func (o *JSONObject) End() {
	o.w.RawByte('}')
}

// Build closes the object and returns the writer's bytes.
func (o *JSONObject) Build() ([]byte, error) {
	o.End()
	return o.w.BuildBytes()
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (p *Poll) MarshalTinyJSON(w *jwriter.Writer) {
	o := BeginObject(w)
	o.U64("id", p.ID)
	o.Str("kind", p.Kind.String())
	o.U64("owner_id", p.OwnerID)
	o.Amount("proposal", p.Proposal)
	o.I64("start_time", p.StartTime)
	o.U64("duration", p.Duration)
	o.I64("deadline", p.Deadline())
	o.Bool("finalized", p.Finalized)
	o.Bool("accepted", p.Accepted)
	o.U64("agree", p.AgreeCount)
	o.U64("votes", p.VoteCount)
	o.End()
}

// MarshalJSON supports json.Marshaler interface
func (p *Poll) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	p.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (rule *RewardRule) MarshalTinyJSON(w *jwriter.Writer) {
	o := BeginObject(w)
	o.U64("index", rule.ID)
	o.Amount("amount", rule.Amount)
	o.Str("state", rule.State.String())
	o.U64("poll_id", rule.PollID)
	o.End()
}

// MarshalJSON supports json.Marshaler interface
func (rule *RewardRule) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	rule.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (rw *Reward) MarshalTinyJSON(w *jwriter.Writer) {
	o := BeginObject(w)
	o.U64("id", rw.ID)
	o.Str("beneficiary", rw.Beneficiary.String())
	o.Amount("amount", rw.Amount)
	o.Bool("withdrawn", rw.Withdrawn)
	o.U64("poll_id", rw.PollID)
	o.End()
}

// MarshalJSON supports json.Marshaler interface
func (rw *Reward) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	rw.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (v *Vote) MarshalTinyJSON(w *jwriter.Writer) {
	o := BeginObject(w)
	o.Bool("voted", v.HasVoted())
	o.I64("time", v.Time)
	o.U64("weight", v.Weight)
	o.Bool("agree", v.Agree)
	o.End()
}

// MarshalJSON supports json.Marshaler interface
func (v *Vote) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	v.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// PoolInfo is the summary printed by the CLI.
type PoolInfo struct {
	Address                sdk.Address
	Owner                  sdk.Address
	Token                  sdk.Address
	TreasuryBalance        *Amount
	RewardPollDuration     uint64
	RewardRulePollDuration uint64
	RewardRuleCount        uint64
}

// Info collects the pool summary from a single snapshot.
func (p *RewardPool) Info() (*PoolInfo, error) {
	info := &PoolInfo{Address: p.self}
	err := p.view(func(c *call) error {
		info.Owner = c.cfg.Owner
		info.Token = c.cfg.Token
		info.RewardPollDuration = c.cfg.RewardPollDuration
		info.RewardRulePollDuration = c.cfg.RewardRulePollDuration
		var err error
		if info.TreasuryBalance, err = getTreasuryBalance(c.st); err != nil {
			return err
		}
		info.RewardRuleCount, err = c.rules().count()
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (i *PoolInfo) MarshalTinyJSON(w *jwriter.Writer) {
	o := BeginObject(w)
	o.Str("address", i.Address.String())
	o.Str("owner", i.Owner.String())
	o.Str("token", i.Token.String())
	o.Amount("treasury", i.TreasuryBalance)
	o.U64("reward_poll_duration", i.RewardPollDuration)
	o.U64("reward_rule_poll_duration", i.RewardRulePollDuration)
	o.U64("reward_rules", i.RewardRuleCount)
	o.End()
}

// MarshalJSON supports json.Marshaler interface
func (i *PoolInfo) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	i.MarshalTinyJSON(&w)
	return w.BuildBytes()
}
