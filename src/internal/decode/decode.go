// Package decode converts operation results produced by the remote agent into
// typed values.
package decode

import (
	"fmt"

	"github.com/rinq/userstore-go/src/internal/x/jsonx"
	"github.com/rinq/userstore-go/src/userstore"
)

// AuthenticationSuccess is the result token that indicates a credential was
// accepted.
const AuthenticationSuccess = "SUCCESS"

// The names of the fields that hold list results.
const (
	UsernamesField = "usernames"
	GroupsField    = "groups"
)

// Authentication converts the result of an authenticate request to a boolean.
//
// The result must be a string. Any string other than AuthenticationSuccess is
// a rejection.
func Authentication(id string, v interface{}) (bool, error) {
	s, ok := v.(string)
	if !ok {
		return false, invalid(userstore.Authenticate, id, "result is %s, expected a string", describe(v))
	}

	return s == AuthenticationSuccess, nil
}

// List extracts the array of strings stored under field in the result of a
// list request.
//
// The result may be a JSON object, or a string containing a JSON object.
func List(t userstore.RequestType, id string, v interface{}, field string) ([]string, error) {
	obj, err := object(t, id, v)
	if err != nil {
		return nil, err
	}

	raw, ok := obj[field]
	if !ok {
		return nil, invalid(t, id, "result has no '%s' field", field)
	}

	arr, ok := raw.([]interface{})
	if !ok {
		return nil, invalid(t, id, "'%s' is %s, expected an array", field, describe(raw))
	}

	names := make([]string, 0, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, invalid(t, id, "'%s[%d]' is %s, expected a string", field, i, describe(e))
		}

		names = append(names, s)
	}

	return names, nil
}

// Attributes converts the result of a get-claims request to a map of
// attribute name to value.
//
// The result may be a JSON object, or a string containing a JSON object. Every
// value must be a string.
func Attributes(id string, v interface{}) (map[string]string, error) {
	obj, err := object(userstore.GetClaims, id, v)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]string, len(obj))
	for k, raw := range obj {
		s, ok := raw.(string)
		if !ok {
			return nil, invalid(userstore.GetClaims, id, "attribute '%s' is %s, expected a string", k, describe(raw))
		}

		attrs[k] = s
	}

	return attrs, nil
}

// object returns v as a JSON object, parsing it first if it is a string.
func object(t userstore.RequestType, id string, v interface{}) (map[string]interface{}, error) {
	if s, ok := v.(string); ok {
		var parsed interface{}
		if err := jsonx.Unmarshal([]byte(s), &parsed); err != nil {
			return nil, userstore.DecodeError{
				RequestType:   t,
				CorrelationID: id,
				Reason:        "result string is not valid JSON",
				Cause:         err,
			}
		}

		v = parsed
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, invalid(t, id, "result is %s, expected an object", describe(v))
	}

	return obj, nil
}

func invalid(t userstore.RequestType, id string, f string, v ...interface{}) error {
	return userstore.DecodeError{
		RequestType:   t,
		CorrelationID: id,
		Reason:        fmt.Sprintf(f, v...),
	}
}

// describe returns a short description of the JSON type of v.
func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "an object"
	default:
		return "a number"
	}
}
