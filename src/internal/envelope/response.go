package envelope

import (
	"github.com/rinq/userstore-go/src/internal/x/jsonx"
	"github.com/rinq/userstore-go/src/userstore"
)

// resultField is the name of the top-level field of the response data that
// holds the operation result.
const resultField = "result"

// Response is the answer to a single delivery attempt, as sent by the remote
// agent.
type Response struct {
	CorrelationID string `codec:"correlationId"`
	ResponseData  string `codec:"responseData"`
}

// MarshalResponse returns the wire representation of r.
func MarshalResponse(r Response) ([]byte, error) {
	return jsonx.Marshal(r)
}

// UnmarshalResponse parses the wire representation of a response.
func UnmarshalResponse(t userstore.RequestType, b []byte) (r Response, err error) {
	if e := jsonx.Unmarshal(b, &r); e != nil {
		err = userstore.DecodeError{
			RequestType: t,
			Reason:      "response record is not valid JSON",
			Cause:       e,
		}
	}

	return
}

// NewResponse returns a response to the request with the given correlation
// ID, carrying result as its operation result.
func NewResponse(correlationID string, result interface{}) (Response, error) {
	data, err := jsonx.Marshal(map[string]interface{}{
		resultField: result,
	})
	if err != nil {
		return Response{}, err
	}

	return Response{
		CorrelationID: correlationID,
		ResponseData:  string(data),
	}, nil
}

// DecodeResponseEnvelope parses the response data of r and returns the value
// of its result field.
//
// It returns a userstore.DecodeError if the response data is not a JSON
// object, or if it does not contain a result field.
func DecodeResponseEnvelope(t userstore.RequestType, r Response) (interface{}, error) {
	var data interface{}

	if err := jsonx.Unmarshal([]byte(r.ResponseData), &data); err != nil {
		return nil, userstore.DecodeError{
			RequestType:   t,
			CorrelationID: r.CorrelationID,
			Reason:        "response data is not valid JSON",
			Cause:         err,
		}
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil, userstore.DecodeError{
			RequestType:   t,
			CorrelationID: r.CorrelationID,
			Reason:        "response data is not a JSON object",
		}
	}

	result, ok := obj[resultField]
	if !ok {
		return nil, userstore.DecodeError{
			RequestType:   t,
			CorrelationID: r.CorrelationID,
			Reason:        "response data has no result field",
		}
	}

	return result, nil
}
