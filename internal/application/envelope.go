package application

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/tidwall/gjson"
)

var errMalformedResponse = errors.New("malformed backend response")

// envelope is the {ok, error, ...} object every action answers with.
type envelope struct {
	action string
	result gjson.Result
}

func parseEnvelope(action string, raw json.RawMessage) (envelope, error) {
	result := gjson.ParseBytes(raw)
	if !result.IsObject() {
		return envelope{}, fmt.Errorf("%s: %w: expected an object", action, errMalformedResponse)
	}

	return envelope{action: action, result: result}, nil
}

func (e envelope) ok() bool {
	return e.result.Get("ok").Bool()
}

func (e envelope) message() string {
	return e.result.Get("error").String()
}

func (e envelope) str(field string) string {
	return e.result.Get(field).String()
}

// object decodes field as a JSON object. A missing or non-object field
// yields an empty map.
func (e envelope) object(field string) (map[string]any, error) {
	value := e.result.Get(field)
	if !value.IsObject() {
		return map[string]any{}, nil
	}

	decoded := map[string]any{}
	if err := json.Unmarshal([]byte(value.Raw), &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", e.action, field, err)
	}
	return decoded, nil
}

func (e envelope) profile() (domain.Profile, error) {
	fields, err := e.object("profile")
	if err != nil {
		return nil, err
	}
	return domain.Profile(fields), nil
}

func (e envelope) acknowledgement() (domain.Acknowledgement, error) {
	decoded := map[string]any{}
	if err := json.Unmarshal([]byte(e.result.Raw), &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode acknowledgement: %w", e.action, err)
	}
	return domain.Acknowledgement(decoded), nil
}
