// Package directory implements userstore.Store on top of an RPC caller and a
// pair of result caches.
package directory

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/cache"
	"github.com/rinq/userstore-go/src/internal/decode"
	"github.com/rinq/userstore-go/src/internal/metrics"
	"github.com/rinq/userstore-go/src/internal/rpc"
	"github.com/rinq/userstore-go/src/internal/x/glob"
	"github.com/rinq/userstore-go/src/userstore"
	"golang.org/x/sync/singleflight"
)

// Caller sends requests to the remote agent.
type Caller interface {
	Call(ctx context.Context, t userstore.RequestType, payload interface{}) (rpc.Result, error)
}

// Config holds the parameters of a store.
type Config struct {
	Tenant        string
	Domain        string
	AnonymousUser string

	// Attributes is the complete list of attributes requested whenever a
	// user's attributes are fetched. If it is empty the agent returns every
	// attribute it knows.
	Attributes []string

	Logger  twelf.Logger
	Metrics *metrics.Collectors
}

type store struct {
	caller Caller
	config Config
	auth   *cache.AuthCache
	attrs  *cache.AttributeCache
	group  singleflight.Group
}

// NewStore returns a store that answers lookups using c, caching successful
// authentications in auth and fetched attributes in attrs.
func NewStore(
	c Caller,
	cfg Config,
	auth *cache.AuthCache,
	attrs *cache.AttributeCache,
) userstore.Store {
	return &store{
		caller: c,
		config: cfg,
		auth:   auth,
		attrs:  attrs,
	}
}

func (s *store) Authenticate(ctx context.Context, username, credential string) (bool, error) {
	digest := userstore.Digest(credential)

	if s.auth.Check(username, digest) {
		s.lookup(metrics.AuthCache, metrics.CacheHit)
		logAuthCacheHit(s.config.Logger, s.config.Tenant, username)
		return true, nil
	}

	s.lookup(metrics.AuthCache, metrics.CacheMiss)

	// concurrent attempts with the same credential share one round trip, which
	// outlives the cancellation of whichever caller started it
	flight := context.WithoutCancel(ctx)
	ch := s.group.DoChan(username+"\x00"+digest, func() (interface{}, error) {
		return s.authenticate(flight, username, credential, digest)
	})

	var r singleflight.Result

	select {
	case r = <-ch:
	case <-ctx.Done():
		err := ctx.Err()
		logOperationError(s.config.Logger, s.config.Tenant, userstore.Authenticate, username, err)
		return false, err
	}

	if r.Err != nil {
		logOperationError(s.config.Logger, s.config.Tenant, userstore.Authenticate, username, r.Err)
		return false, r.Err
	}

	out := r.Val.(authOutcome)

	if out.cached {
		logAuthCacheHit(s.config.Logger, s.config.Tenant, username)
	} else {
		logAuthenticated(s.config.Logger, s.config.Tenant, username, out.ok)
	}

	return out.ok, nil
}

// authOutcome is the shared result of an authentication flight.
type authOutcome struct {
	ok     bool
	cached bool
}

// authenticate re-checks the cache and otherwise asks the remote agent,
// caching an accepted credential.
func (s *store) authenticate(
	ctx context.Context,
	username, credential, digest string,
) (authOutcome, error) {
	if s.auth.Check(username, digest) {
		return authOutcome{ok: true, cached: true}, nil
	}

	res, err := s.caller.Call(ctx, userstore.Authenticate, map[string]string{
		"username": username,
		"password": credential,
	})
	if err != nil {
		return authOutcome{}, err
	}

	ok, err := decode.Authentication(res.CorrelationID, res.Value)
	if err != nil {
		return authOutcome{}, err
	}

	if ok && s.auth.Fill(username, digest) {
		logAuthCacheFill(s.config.Logger, s.config.Tenant, username)
	}

	return authOutcome{ok: ok}, nil
}

func (s *store) UserPropertyValues(
	ctx context.Context,
	username string,
	propertyNames []string,
	profile string,
) (map[string]string, error) {
	all, ok := s.attrs.Get(username)

	if ok {
		s.lookup(metrics.AttributeCache, metrics.CacheHit)
	} else {
		s.lookup(metrics.AttributeCache, metrics.CacheMiss)

		res, err := s.caller.Call(ctx, userstore.GetClaims, map[string]string{
			"username":   username,
			"attributes": strings.Join(s.config.Attributes, ","),
		})
		if err != nil {
			logOperationError(s.config.Logger, s.config.Tenant, userstore.GetClaims, username, err)
			return nil, err
		}

		all, err = decode.Attributes(res.CorrelationID, res.Value)
		if err != nil {
			logOperationError(s.config.Logger, s.config.Tenant, userstore.GetClaims, username, err)
			return nil, err
		}

		s.attrs.Put(username, all)
	}

	values := make(map[string]string, len(propertyNames))
	for _, n := range propertyNames {
		if v, ok := all[n]; ok {
			values[n] = v
		}
	}

	return values, nil
}

func (s *store) ListUsers(ctx context.Context, filter string, maxItems int) ([]string, error) {
	names, err := s.list(ctx, userstore.GetUserList, filter, maxItems, decode.UsernamesField)
	if err != nil {
		return nil, err
	}

	return truncate(
		decode.QualifyNames(names, s.config.Domain, s.config.AnonymousUser),
		maxItems,
	), nil
}

func (s *store) ListRoles(ctx context.Context, filter string, maxItems int) ([]string, error) {
	names, err := s.list(ctx, userstore.GetRoles, filter, maxItems, decode.GroupsField)
	if err != nil {
		return nil, err
	}

	return truncate(
		decode.QualifyNames(names, s.config.Domain, ""),
		maxItems,
	), nil
}

func (s *store) RolesOfUser(ctx context.Context, username, filter string) ([]string, error) {
	res, err := s.caller.Call(ctx, userstore.GetUserRoles, map[string]string{
		"username": username,
	})
	if err != nil {
		logOperationError(s.config.Logger, s.config.Tenant, userstore.GetUserRoles, username, err)
		return nil, err
	}

	roles, err := decode.List(userstore.GetUserRoles, res.CorrelationID, res.Value, decode.GroupsField)
	if err != nil {
		logOperationError(s.config.Logger, s.config.Tenant, userstore.GetUserRoles, username, err)
		return nil, err
	}

	return glob.Filter(filter, roles), nil
}

func (s *store) IsUserInRole(ctx context.Context, username, role string) (bool, error) {
	roles, err := s.RolesOfUser(ctx, username, glob.MatchAll)
	if err != nil {
		return false, err
	}

	for _, r := range roles {
		if strings.EqualFold(r, role) {
			return true, nil
		}
	}

	return false, nil
}

func (s *store) UserExists(context.Context, string) (bool, error) {
	return true, nil
}

func (s *store) RoleExists(context.Context, string) (bool, error) {
	return true, nil
}

func (s *store) Mutate(_ context.Context, m userstore.Mutation) error {
	return userstore.UnsupportedOperationError{Operation: m.String()}
}

func (s *store) IsReadOnly() bool {
	return true
}

func (s *store) Tenant() string {
	return s.config.Tenant
}

func (s *store) Domain() string {
	return s.config.Domain
}

// list performs a list request and returns the names it yields, unqualified.
func (s *store) list(
	ctx context.Context,
	t userstore.RequestType,
	filter string,
	maxItems int,
	field string,
) ([]string, error) {
	res, err := s.caller.Call(ctx, t, map[string]string{
		"filter": filter,
		"limit":  strconv.Itoa(maxItems),
	})
	if err != nil {
		logOperationError(s.config.Logger, s.config.Tenant, t, filter, err)
		return nil, err
	}

	names, err := decode.List(t, res.CorrelationID, res.Value, field)
	if err != nil {
		logOperationError(s.config.Logger, s.config.Tenant, t, filter, err)
		return nil, err
	}

	return names, nil
}

func (s *store) lookup(c, result string) {
	if s.config.Metrics != nil {
		s.config.Metrics.Lookup(c, result)
	}
}

// truncate returns at most n elements of names. If n is zero or negative,
// names is returned unmodified.
func truncate(names []string, n int) []string {
	if n > 0 && len(names) > n {
		return names[:n]
	}

	return names
}
