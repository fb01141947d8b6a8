package contract

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

var errUnexpectedEOF = errors.New("unexpected EOF")

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

// bytes returns the accumulated buffer.
func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeInt64 reuses the uint routine since casting keeps the sign bits intact.
func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeAmount stores the full 32 byte word, nil counts as zero.
func (w *binWriter) writeAmount(v *Amount) {
	if v == nil {
		v = new(uint256.Int)
	}
	b := v.Bytes32()
	w.buf.Write(b[:])
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(a.String())
}

type binReader struct {
	data []byte
	pos  int
}

// newReader wraps raw bytes so we can peek sequentially w/out copying.
func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

// readByte grabs the next byte and bumps the cursor.
func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readBool restores bools stored via writeBool above.
func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// readUint64 decodes big endian integers for ids and totals.
func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

// readInt64 simply casts the unsigned read, matching the writer logic.
func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// readVarUint undoes the compact varint encoding for lengths/counts.
func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readAmount() (*Amount, error) {
	if r.pos+32 > len(r.data) {
		return nil, errUnexpectedEOF
	}
	v := new(uint256.Int).SetBytes32(r.data[r.pos : r.pos+32])
	r.pos += 32
	return v, nil
}

// readString reads the varint length and slices out the bytes.
func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(len(r.data)-r.pos) {
		return "", errUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *binReader) readAddress() (sdk.Address, error) {
	s, err := r.readString()
	return sdk.Address(s), err
}

// EncodeContractConfig packs the singleton config.
func EncodeContractConfig(cfg *ContractConfig) []byte {
	w := newWriter()
	w.writeAddress(cfg.Owner)
	w.writeAddress(cfg.Token)
	w.writeUint64(cfg.RewardPollDuration)
	w.writeUint64(cfg.RewardRulePollDuration)
	return w.bytes()
}

func DecodeContractConfig(data []byte) (*ContractConfig, error) {
	r := newReader(data)
	var cfg ContractConfig
	var err error
	if cfg.Owner, err = r.readAddress(); err != nil {
		return nil, err
	}
	if cfg.Token, err = r.readAddress(); err != nil {
		return nil, err
	}
	if cfg.RewardPollDuration, err = r.readUint64(); err != nil {
		return nil, err
	}
	if cfg.RewardRulePollDuration, err = r.readUint64(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EncodeMember packs a Member into bytes so storage stays lean.
// Example payload: EncodeMember(&Member{Address: "hive:alice", JoinedAt: 1700000000})
func EncodeMember(m *Member) []byte {
	w := newWriter()
	w.writeAddress(m.Address)
	w.writeBool(m.IsManager)
	w.writeInt64(m.JoinedAt)
	return w.bytes()
}

func DecodeMember(data []byte) (*Member, error) {
	r := newReader(data)
	var m Member
	var err error
	if m.Address, err = r.readAddress(); err != nil {
		return nil, err
	}
	if m.IsManager, err = r.readBool(); err != nil {
		return nil, err
	}
	if m.JoinedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	return &m, nil
}

// EncodePoll serializes a poll including its running tally.
// Example payload: EncodePoll(&Poll{ID: 3, Kind: PollKindRule, Proposal: uint256.NewInt(50)})
func EncodePoll(p *Poll) []byte {
	w := newWriter()
	w.writeUint64(p.ID)
	w.buf.WriteByte(byte(p.Kind))
	w.writeUint64(p.OwnerID)
	w.writeAmount(p.Proposal)
	w.writeInt64(p.StartTime)
	w.writeUint64(p.Duration)
	w.writeBool(p.Finalized)
	w.writeBool(p.Accepted)
	w.writeUint64(p.AgreeCount)
	w.writeUint64(p.VoteCount)
	return w.bytes()
}

func DecodePoll(data []byte) (*Poll, error) {
	r := newReader(data)
	var p Poll
	var err error
	if p.ID, err = r.readUint64(); err != nil {
		return nil, err
	}
	kind, err := r.readByte()
	if err != nil {
		return nil, err
	}
	p.Kind = PollKind(kind)
	if p.OwnerID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if p.Proposal, err = r.readAmount(); err != nil {
		return nil, err
	}
	if p.StartTime, err = r.readInt64(); err != nil {
		return nil, err
	}
	if p.Duration, err = r.readUint64(); err != nil {
		return nil, err
	}
	if p.Finalized, err = r.readBool(); err != nil {
		return nil, err
	}
	if p.Accepted, err = r.readBool(); err != nil {
		return nil, err
	}
	if p.AgreeCount, err = r.readUint64(); err != nil {
		return nil, err
	}
	if p.VoteCount, err = r.readUint64(); err != nil {
		return nil, err
	}
	return &p, nil
}

func EncodeVote(v *Vote) []byte {
	w := newWriter()
	w.writeInt64(v.Time)
	w.writeVarUint(v.Weight)
	w.writeBool(v.Agree)
	return w.bytes()
}

func DecodeVote(data []byte) (*Vote, error) {
	r := newReader(data)
	var v Vote
	var err error
	if v.Time, err = r.readInt64(); err != nil {
		return nil, err
	}
	if v.Weight, err = r.readVarUint(); err != nil {
		return nil, err
	}
	if v.Agree, err = r.readBool(); err != nil {
		return nil, err
	}
	return &v, nil
}

func EncodeRewardRule(rule *RewardRule) []byte {
	w := newWriter()
	w.writeUint64(rule.ID)
	w.writeAmount(rule.Amount)
	w.buf.WriteByte(byte(rule.State))
	w.writeUint64(rule.PollID)
	return w.bytes()
}

func DecodeRewardRule(data []byte) (*RewardRule, error) {
	r := newReader(data)
	var rule RewardRule
	var err error
	if rule.ID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if rule.Amount, err = r.readAmount(); err != nil {
		return nil, err
	}
	state, err := r.readByte()
	if err != nil {
		return nil, err
	}
	rule.State = RuleState(state)
	if rule.PollID, err = r.readUint64(); err != nil {
		return nil, err
	}
	return &rule, nil
}

// EncodeReward serializes a claim, the withdrawn flag is what guards double payouts.
func EncodeReward(rw *Reward) []byte {
	w := newWriter()
	w.writeUint64(rw.ID)
	w.writeAddress(rw.Beneficiary)
	w.writeAmount(rw.Amount)
	w.writeBool(rw.Withdrawn)
	w.writeUint64(rw.PollID)
	return w.bytes()
}

func DecodeReward(data []byte) (*Reward, error) {
	r := newReader(data)
	var rw Reward
	var err error
	if rw.ID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if rw.Beneficiary, err = r.readAddress(); err != nil {
		return nil, err
	}
	if rw.Amount, err = r.readAmount(); err != nil {
		return nil, err
	}
	if rw.Withdrawn, err = r.readBool(); err != nil {
		return nil, err
	}
	if rw.PollID, err = r.readUint64(); err != nil {
		return nil, err
	}
	return &rw, nil
}
