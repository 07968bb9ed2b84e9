package userstoreamqp

import "github.com/rinq/userstore-go/src/userstore/options"

func logCreated(o options.Options) {
	o.Logger.Debug(
		"[%s] created '%s' user store publishing to '%s'",
		o.Tenant,
		o.Domain,
		o.RequestTopic,
	)
}
