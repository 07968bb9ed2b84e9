package envelope

import (
	"errors"

	"github.com/rinq/userstore-go/src/internal/x/jsonx"
	"github.com/rinq/userstore-go/src/userstore"
)

// Request is a single delivery attempt of an operation, as sent to the remote
// agent.
type Request struct {
	CorrelationID string                `codec:"correlationId"`
	RequestType   userstore.RequestType `codec:"requestType"`
	RequestData   string                `codec:"requestData"`
	Tenant        string                `codec:"tenant"`
	Domain        string                `codec:"domain"`
}

// EncodeRequest returns a new request.
//
// payload is the operation-specific request data. It is encoded as a JSON
// string inside the request record.
func EncodeRequest(
	correlationID string,
	t userstore.RequestType,
	payload interface{},
	tenant string,
	domain string,
) (Request, error) {
	if correlationID == "" {
		return Request{}, errors.New("correlation ID must not be empty")
	}

	if t == "" {
		return Request{}, errors.New("request type must not be empty")
	}

	data, err := jsonx.Marshal(payload)
	if err != nil {
		return Request{}, err
	}

	return Request{
		CorrelationID: correlationID,
		RequestType:   t,
		RequestData:   string(data),
		Tenant:        tenant,
		Domain:        domain,
	}, nil
}

// MarshalRequest returns the wire representation of r.
func MarshalRequest(r Request) ([]byte, error) {
	return jsonx.Marshal(r)
}

// UnmarshalRequest parses the wire representation of a request.
func UnmarshalRequest(b []byte) (r Request, err error) {
	err = jsonx.Unmarshal(b, &r)
	return
}

// Payload unpacks the request data into v.
func (r Request) Payload(v interface{}) error {
	return jsonx.Unmarshal([]byte(r.RequestData), v)
}
