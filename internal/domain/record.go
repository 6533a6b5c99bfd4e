package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const pendingPrefix = "pending:"

// RecordID identifies a resource record. It is either Saved with a
// server-assigned id, or Pending with a client-generated token that marks an
// optimistic placeholder not yet confirmed by the server.
type RecordID struct {
	id    int64
	token uuid.UUID
}

// Saved returns the id of a persisted record.
func Saved(id int64) RecordID {
	return RecordID{id: id}
}

// Pending returns a fresh placeholder id. Each call yields a distinct token,
// so concurrent optimistic adds never collide.
func Pending() RecordID {
	return RecordID{token: uuid.New()}
}

// IsPending reports whether the record is an unsaved placeholder.
func (r RecordID) IsPending() bool {
	return r.id == 0
}

// Int64 returns the server id, or 0 for pending records.
func (r RecordID) Int64() int64 {
	return r.id
}

// Compare orders saved ids numerically. Pending ids sort after every saved
// id and tie with each other.
func (r RecordID) Compare(o RecordID) int {
	switch {
	case r.IsPending() && o.IsPending():
		return 0
	case r.IsPending():
		return 1
	case o.IsPending():
		return -1
	}
	return cmp.Compare(r.id, o.id)
}

// Token returns the placeholder token (uuid.Nil for saved records).
func (r RecordID) Token() uuid.UUID {
	return r.token
}

// String returns the id as used in resource paths.
func (r RecordID) String() string {
	if r.IsPending() {
		return pendingPrefix + r.token.String()
	}
	return strconv.FormatInt(r.id, 10)
}

// Path returns the id as a path extension ("/12").
func (r RecordID) Path() (string, error) {
	if r.IsPending() {
		return "", ErrPendingRecord
	}
	return "/" + r.String(), nil
}

// MarshalJSON encodes saved ids as numbers and pending ids as "pending:<uuid>".
func (r RecordID) MarshalJSON() ([]byte, error) {
	if r.IsPending() {
		return json.Marshal(r.String())
	}
	return []byte(strconv.FormatInt(r.id, 10)), nil
}

// UnmarshalJSON accepts a number, a numeric string or a pending token.
func (r *RecordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RecordID{}
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RecordID{id: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid record id %s: %w", string(data), err)
	}

	if rest, ok := strings.CutPrefix(s, pendingPrefix); ok {
		token, err := uuid.Parse(rest)
		if err != nil {
			return fmt.Errorf("invalid pending token %q: %w", rest, err)
		}
		*r = RecordID{token: token}
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", s, err)
	}
	*r = RecordID{id: n}
	return nil
}

// Record is implemented by every cacheable resource.
type Record interface {
	GetID() RecordID
}

// Preferable is a record that can be marked as the preferred one among its
// siblings (e.g. the preferred performance profile of an aircraft).
type Preferable[T any] interface {
	Record
	IsPreferred() bool
	WithPreferred(preferred bool) T
}
