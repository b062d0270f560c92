// Package token builds the opaque string printed on a clearance QR code.
//
// A token is Prefix followed by the unpadded base64url encoding of a
// deterministic protobuf Struct holding the clearance id, the personnel id
// and the expiry. The whole string is the stored lookup key; the payload is
// only used for cheap format checks before hitting the store.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const Prefix = "MBGHC1."

var ErrMalformed = errors.New("malformed clearance token")

type Payload struct {
	ClearanceID string
	PersonnelID string
	ValidUntil  time.Time
}

func Encode(p Payload) (string, error) {
	if p.ClearanceID == "" || p.PersonnelID == "" || p.ValidUntil.IsZero() {
		return "", fmt.Errorf("token: incomplete payload")
	}
	st, err := structpb.NewStruct(map[string]any{
		"cid": p.ClearanceID,
		"pid": p.PersonnelID,
		"exp": p.ValidUntil.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("token: build payload: %w", err)
	}
	raw, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("token: marshal payload: %w", err)
	}
	return Prefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

func Decode(tok string) (Payload, error) {
	body, ok := strings.CutPrefix(tok, Prefix)
	if !ok || body == "" {
		return Payload{}, ErrMalformed
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Payload{}, ErrMalformed
	}
	var st structpb.Struct
	if err := proto.Unmarshal(raw, &st); err != nil {
		return Payload{}, ErrMalformed
	}
	f := st.GetFields()
	p := Payload{
		ClearanceID: f["cid"].GetStringValue(),
		PersonnelID: f["pid"].GetStringValue(),
	}
	exp, err := time.Parse(time.RFC3339, f["exp"].GetStringValue())
	if err != nil || p.ClearanceID == "" || p.PersonnelID == "" {
		return Payload{}, ErrMalformed
	}
	p.ValidUntil = exp.UTC()
	return p, nil
}
