package errorx

import (
	"encoding/json"
	"errors"
)

var ErrUnexpectedResponse = errors.New("unexpected response")

// Result is the {ok: T} | {err: Err} envelope returned by every service
// operation. Exactly one of the two branches is set.
type Result[T any] struct {
	ok    T
	err   *Err
	isSet bool
}

func Ok[T any](v T) Result[T] {
	return Result[T]{ok: v, isSet: true}
}

func Fail[T any](err error) Result[T] {
	e := From(err)
	return Result[T]{err: &e, isSet: true}
}

// ResultOf builds an envelope from a conventional (value, error) pair.
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// ExtractOk returns the ok value, or the Err of the error branch.
func ExtractOk[T any](r Result[T]) (T, error) {
	if r.err != nil {
		var zero T
		return zero, *r.err
	}
	if !r.isSet {
		var zero T
		return zero, ErrUnexpectedResponse
	}
	return r.ok, nil
}

// ExtractErr returns the Err of the error branch. An ok envelope is an
// unexpected response.
func ExtractErr[T any](r Result[T]) (Err, error) {
	if r.err == nil {
		return Err{}, ErrUnexpectedResponse
	}
	return *r.err, nil
}

func (r Result[T]) IsOk() bool {
	return r.isSet && r.err == nil
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(struct {
			Err *Err `json:"err"`
		}{Err: r.err})
	}
	// the ok branch is written even for zero values, so that {"ok":null}
	// round-trips for unit responses
	return json.Marshal(struct {
		Ok T `json:"ok"`
	}{Ok: r.ok})
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return ErrUnexpectedResponse
	}
	if payload, ok := raw["err"]; ok {
		var e Err
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		*r = Result[T]{err: &e, isSet: true}
		return nil
	}
	payload, ok := raw["ok"]
	if !ok {
		return ErrUnexpectedResponse
	}
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return err
	}
	*r = Result[T]{ok: v, isSet: true}
	return nil
}

// Null is the payload of responses that carry no value. It encodes as JSON
// null.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
