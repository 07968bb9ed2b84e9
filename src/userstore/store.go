package userstore

import "context"

// Store is a read-only user directory whose lookups are answered by a remote
// agent reachable only through a message broker.
//
// Every method blocks until the agent answers, or until all delivery attempts
// have timed out. Mutating operations are not supported, see Mutate().
type Store interface {
	// Authenticate checks credential against the remote directory.
	//
	// A false result with a nil error means that the agent rejected the
	// credential. A non-nil error means the outcome could not be determined,
	// in which case the result is always false.
	Authenticate(ctx context.Context, username, credential string) (bool, error)

	// UserPropertyValues returns the values of the named properties for the
	// given user. Properties that the user does not have are omitted from the
	// result.
	UserPropertyValues(
		ctx context.Context,
		username string,
		propertyNames []string,
		profile string,
	) (map[string]string, error)

	// ListUsers returns the domain-qualified names of the users that match
	// filter. At most maxItems names are returned, unless maxItems is zero or
	// negative.
	ListUsers(ctx context.Context, filter string, maxItems int) ([]string, error)

	// ListRoles returns the domain-qualified names of the roles that match
	// filter. At most maxItems names are returned, unless maxItems is zero or
	// negative.
	ListRoles(ctx context.Context, filter string, maxItems int) ([]string, error)

	// RolesOfUser returns the names of the roles assigned to the given user
	// that match filter.
	RolesOfUser(ctx context.Context, username, filter string) ([]string, error)

	// IsUserInRole returns true if role is one of the user's roles, compared
	// case-insensitively.
	IsUserInRole(ctx context.Context, username, role string) (bool, error)

	// UserExists always returns true, the agent offers no existence check.
	UserExists(ctx context.Context, username string) (bool, error)

	// RoleExists always returns true, the agent offers no existence check.
	RoleExists(ctx context.Context, role string) (bool, error)

	// Mutate always fails with an UnsupportedOperationError, without
	// contacting the broker.
	Mutate(ctx context.Context, m Mutation) error

	// IsReadOnly always returns true.
	IsReadOnly() bool

	// Tenant returns the tenant on whose behalf requests are made.
	Tenant() string

	// Domain returns the user store domain used to qualify names.
	Domain() string
}
