package services

import (
	"fmt"
	"sync/atomic"
)

// MaxQueueSeq is the highest raw sequence value an OrderNumberSequencer
// will issue before wrapping back to 1. It corresponds to order number
// "Z-999": 26 letter blocks of 999 numbers each.
const MaxQueueSeq uint16 = 26 * 999

// OrderNumberSequencer issues wrapping queue sequence numbers for confirmed
// orders. The sequence lives in the range [1, MaxQueueSeq]; advancing past
// MaxQueueSeq wraps back to 1, so uniqueness is only guaranteed within a
// single wrap cycle. The shop resets the sequence daily, long before a cycle
// can be exhausted.
//
// All methods are safe for concurrent use. Next is lock-free: it advances
// the counter with a compare-and-swap loop, so two concurrent builds can
// never observe the same sequence value.
type OrderNumberSequencer struct {
	counter atomic.Uint32
}

// NewOrderNumberSequencer creates a sequencer positioned at start, typically
// the last value persisted in settings. A start outside [1, MaxQueueSeq] is
// normalized to 1.
func NewOrderNumberSequencer(start uint16) *OrderNumberSequencer {
	if start < 1 || start > MaxQueueSeq {
		start = 1
	}
	s := &OrderNumberSequencer{}
	s.counter.Store(uint32(start))
	return s
}

// Next atomically advances the sequence and returns the new value,
// wrapping from MaxQueueSeq back to 1.
func (s *OrderNumberSequencer) Next() uint16 {
	for {
		current := s.counter.Load()
		next := current + 1
		if current >= uint32(MaxQueueSeq) {
			next = 1
		}
		if s.counter.CompareAndSwap(current, next) {
			return uint16(next)
		}
	}
}

// Current returns the sequence value most recently issued or restored,
// without advancing it.
func (s *OrderNumberSequencer) Current() uint16 {
	return uint16(s.counter.Load())
}

// Reset rewinds the sequence to its initial position. Invoked by the
// daily reset job so order numbers stay small within a business day.
func (s *OrderNumberSequencer) Reset() {
	s.counter.Store(1)
}

// OrderNumber renders a raw sequence value as a human-readable order number:
// a letter block 'A'..'Z' followed by a zero-padded position within the
// block, e.g. 1 -> "A-001", 999 -> "A-999", 1000 -> "B-001", 25974 -> "Z-999".
// Values outside [1, MaxQueueSeq] are normalized to 1 first.
func OrderNumber(seq uint16) string {
	if seq < 1 || seq > MaxQueueSeq {
		seq = 1
	}
	letter := rune('A' + (seq-1)/999)
	number := (seq-1)%999 + 1
	return fmt.Sprintf("%c-%03d", letter, number)
}
