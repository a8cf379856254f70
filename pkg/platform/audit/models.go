package audit

import (
	"context"
	"time"

	"supplyledger/pkg/domain"
)

// Kind names a notification emitted by a successful mutating operation.
type Kind string

const (
	KindMemberRequested     Kind = "member_requested"
	KindMemberStatusChanged Kind = "member_status_changed"
	KindTokenClassMinted    Kind = "token_class_minted"
	KindTransferRequested   Kind = "transfer_requested"
	KindTransferAccepted    Kind = "transfer_accepted"
	KindTransferRejected    Kind = "transfer_rejected"
)

// Event is one entry of the append-only notification journal. Seq is assigned
// by the journal on append and is the global operation order; fields that do
// not apply to a kind are left zero.
type Event struct {
	Seq          uint64              `json:"seq"`
	Kind         Kind                `json:"kind"`
	Principal    domain.Principal    `json:"principal,omitempty"`
	Role         domain.Role         `json:"role,omitempty"`
	Status       string              `json:"status,omitempty"`
	TokenClassID domain.TokenClassID `json:"token_class_id,omitempty"`
	TransferID   domain.TransferID   `json:"transfer_id,omitempty"`
	From         domain.Principal    `json:"from,omitempty"`
	To           domain.Principal    `json:"to,omitempty"`
	Amount       uint64              `json:"amount,omitempty"`
	Name         string              `json:"name,omitempty"`
	TotalSupply  uint64              `json:"total_supply,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
	RequestID    string              `json:"request_id,omitempty"`
}

func MemberRequested(principal domain.Principal, role domain.Role) Event {
	return Event{Kind: KindMemberRequested, Principal: principal, Role: role}
}

func MemberStatusChanged(principal domain.Principal, status string) Event {
	return Event{Kind: KindMemberStatusChanged, Principal: principal, Status: status}
}

func TokenClassMinted(id domain.TokenClassID, creator domain.Principal, name string, totalSupply uint64) Event {
	return Event{Kind: KindTokenClassMinted, TokenClassID: id, Principal: creator, Name: name, TotalSupply: totalSupply}
}

func TransferRequested(id domain.TransferID, from, to domain.Principal, tokenID domain.TokenClassID, amount uint64) Event {
	return Event{Kind: KindTransferRequested, TransferID: id, From: from, To: to, TokenClassID: tokenID, Amount: amount}
}

// TransferAccepted and TransferRejected carry only the id; the actor is
// recorded as Principal for partitioning.
func TransferAccepted(id domain.TransferID, caller domain.Principal) Event {
	return Event{Kind: KindTransferAccepted, TransferID: id, Principal: caller}
}

func TransferRejected(id domain.TransferID, caller domain.Principal) Event {
	return Event{Kind: KindTransferRejected, TransferID: id, Principal: caller}
}

// Key is the principal the event is about; the outbox relay partitions by it.
func (e Event) Key() string {
	if e.Principal != "" {
		return e.Principal.String()
	}
	return e.From.String()
}

// Store is the notification journal.
type Store interface {
	// Append assigns the next sequence number and persists the event in the
	// caller's unit of work.
	Append(ctx context.Context, event Event) (Event, error)
	// ListAfter returns up to limit events with Seq > after, in Seq order.
	ListAfter(ctx context.Context, after uint64, limit int) ([]Event, error)
}

// Outbox is the relay-facing side of a journal.
type Outbox interface {
	ListUnpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, upTo uint64) error
}
