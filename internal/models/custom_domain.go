package models

import (
	"encoding/json"
)

// BnRegistrationState is one of NotStarted, Pending, Registered or
// RegistrationFailed.
type BnRegistrationState interface {
	json.Marshaler
	isBnRegistrationState()
}

type NotStarted struct{}

type Pending struct {
	BnRegistrationID string `json:"bn_registration_id"`
}

type Registered struct {
	BnRegistrationID string `json:"bn_registration_id"`
}

type RegistrationFailed struct {
	BnRegistrationID string `json:"bn_registration_id"`
	ErrorMessage     string `json:"error_message"`
}

func (NotStarted) isBnRegistrationState()         {}
func (Pending) isBnRegistrationState()            {}
func (Registered) isBnRegistrationState()         {}
func (RegistrationFailed) isBnRegistrationState() {}

func (NotStarted) MarshalJSON() ([]byte, error) {
	return marshalVariant("not_started", nil)
}

func (p Pending) MarshalJSON() ([]byte, error) {
	type plain Pending
	return marshalVariant("pending", plain(p))
}

func (r Registered) MarshalJSON() ([]byte, error) {
	type plain Registered
	return marshalVariant("registered", plain(r))
}

func (f RegistrationFailed) MarshalJSON() ([]byte, error) {
	type plain RegistrationFailed
	return marshalVariant("failed", plain(f))
}

func DecodeBnRegistrationState(data []byte) (BnRegistrationState, error) {
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "not_started":
		return NotStarted{}, nil
	case "pending":
		type plain Pending
		var v plain
		err = decodePayload(payload, &v)
		return Pending(v), err
	case "registered":
		type plain Registered
		var v plain
		err = decodePayload(payload, &v)
		return Registered(v), err
	case "failed":
		type plain RegistrationFailed
		var v plain
		err = decodePayload(payload, &v)
		return RegistrationFailed(v), err
	}
	return nil, unknownVariantError{kind: "bn registration state", tag: tag}
}

// BnRegistrationID returns the boundary node registration id, if the state
// carries one.
func BnRegistrationID(s BnRegistrationState) (string, bool) {
	switch v := s.(type) {
	case Pending:
		return v.BnRegistrationID, true
	case Registered:
		return v.BnRegistrationID, true
	case RegistrationFailed:
		return v.BnRegistrationID, true
	}
	return "", false
}

func BnRegistrationErrorMessage(s BnRegistrationState) (string, bool) {
	if f, ok := s.(RegistrationFailed); ok {
		return f.ErrorMessage, true
	}
	return "", false
}

type CustomDomainRecord struct {
	ID                  string              `json:"id"`
	DomainName          string              `json:"domain_name"`
	BnRegistrationState BnRegistrationState `json:"bn_registration_state"`
	CreatedAt           string              `json:"created_at"`
	UpdatedAt           string              `json:"updated_at"`
}

func (r *CustomDomainRecord) UnmarshalJSON(data []byte) error {
	type plain CustomDomainRecord
	aux := struct {
		*plain
		BnRegistrationState json.RawMessage `json:"bn_registration_state"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	state, err := DecodeBnRegistrationState(aux.BnRegistrationState)
	if err != nil {
		return err
	}
	r.BnRegistrationState = state
	return nil
}

type CreateCustomDomainRecordRequest struct {
	DomainName string `json:"domain_name"`
}

type UpdateCustomDomainRecordRequest struct {
	ID                  string              `json:"id"`
	BnRegistrationState BnRegistrationState `json:"bn_registration_state"`
}

func (r *UpdateCustomDomainRecordRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateCustomDomainRecordRequest
	aux := struct {
		*plain
		BnRegistrationState json.RawMessage `json:"bn_registration_state"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	state, err := DecodeBnRegistrationState(aux.BnRegistrationState)
	if err != nil {
		return err
	}
	r.BnRegistrationState = state
	return nil
}

type DeleteCustomDomainRecordRequest struct {
	ID string `json:"id"`
}
