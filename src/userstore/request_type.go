package userstore

import "fmt"

// RequestType identifies an operation performed by the remote agent.
type RequestType string

const (
	// Authenticate is the request type used to verify a user's credential.
	Authenticate RequestType = "authenticate"

	// GetClaims is the request type used to fetch a user's attributes.
	GetClaims RequestType = "getclaims"

	// GetUserList is the request type used to enumerate users.
	GetUserList RequestType = "getuserlist"

	// GetUserRoles is the request type used to list the roles of a single
	// user.
	GetUserRoles RequestType = "getuserroles"

	// GetRoles is the request type used to enumerate roles.
	GetRoles RequestType = "getroles"
)

// RequestTypes is the set of request types understood by the remote agent.
var RequestTypes = []RequestType{
	Authenticate,
	GetClaims,
	GetUserList,
	GetUserRoles,
	GetRoles,
}

// Validate returns nil if t is a known request type.
func (t RequestType) Validate() error {
	for _, v := range RequestTypes {
		if t == v {
			return nil
		}
	}

	return fmt.Errorf("request type '%s' is invalid", string(t))
}

func (t RequestType) String() string {
	return string(t)
}
