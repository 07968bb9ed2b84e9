package directory

import (
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/userstore"
)

func logAuthCacheHit(logger twelf.Logger, tenant, username string) {
	logger.Debug(
		"[%s] authenticated '%s' from the authentication cache",
		tenant,
		username,
	)
}

func logAuthCacheFill(logger twelf.Logger, tenant, username string) {
	logger.Debug(
		"[%s] cached successful authentication of '%s'",
		tenant,
		username,
	)
}

func logAuthenticated(logger twelf.Logger, tenant, username string, ok bool) {
	if ok {
		logger.Debug("[%s] remote agent accepted the credential of '%s'", tenant, username)
	} else {
		logger.Log("[%s] remote agent rejected the credential of '%s'", tenant, username)
	}
}

func logOperationError(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	subject string,
	err error,
) {
	logger.Log(
		"[%s] '%s' request for '%s' failed: %s",
		tenant,
		t,
		subject,
		err,
	)
}
