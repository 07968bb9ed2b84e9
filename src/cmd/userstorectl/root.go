package main

import (
	"fmt"
	"os"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/userstore"
	"github.com/rinq/userstore-go/src/userstore/options"
	"github.com/rinq/userstore-go/src/userstoreamqp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// config holds the values of the persistent flags.
type config struct {
	PropertiesFile string
	Broker         string
	Tenant         string
	Domain         string
	Topic          string
	Debug          bool
}

func newRootCmd() *cobra.Command {
	var cfg config
	var store userstore.Store

	rootCmd := &cobra.Command{
		Use:           "userstorectl",
		Short:         "Query a remote user directory over the message broker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cfg.store()
			store = s
			return err
		},
	}

	fs := rootCmd.PersistentFlags()
	fs.StringVarP(&cfg.PropertiesFile, "properties", "p", "", "YAML file of user store properties")
	fs.StringVar(&cfg.Broker, "broker", "", "broker URL, overrides the "+options.BrokerEndpointProperty+" property")
	fs.StringVar(&cfg.Tenant, "tenant", "", "tenant on whose behalf requests are made")
	fs.StringVar(&cfg.Domain, "domain", "", "user store domain (default \""+options.DefaultDomain+"\")")
	fs.StringVar(&cfg.Topic, "topic", "", "request topic (default \""+options.DefaultRequestTopic+"\")")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	get := func() userstore.Store { return store }

	rootCmd.AddCommand(
		newAuthenticateCmd(get),
		newPropertiesCmd(get),
		newUsersCmd(get),
		newRolesCmd(get),
		newUserRolesCmd(get),
		newInRoleCmd(get),
	)

	return rootCmd
}

// store returns a user store configured from the environment, the properties
// file and the flags, in increasing order of precedence.
func (c *config) store() (userstore.Store, error) {
	opts, err := options.FromEnv()
	if err != nil {
		return nil, err
	}

	if c.PropertiesFile != "" {
		props, err := loadProperties(c.PropertiesFile)
		if err != nil {
			return nil, err
		}

		opts = append(opts, options.Properties(props))
	}

	if c.Broker != "" {
		opts = append(opts, options.Property(options.BrokerEndpointProperty, c.Broker))
	}

	if c.Tenant != "" {
		opts = append(opts, options.Tenant(c.Tenant))
	}

	if c.Domain != "" {
		opts = append(opts, options.Domain(c.Domain))
	}

	if c.Topic != "" {
		opts = append(opts, options.RequestTopic(c.Topic))
	}

	opts = append(opts, options.Product("userstorectl"))

	if c.Debug {
		opts = append(opts, options.Logger(&twelf.StandardLogger{CaptureDebug: true}))
	}

	return userstoreamqp.NewStore(opts...)
}

// loadProperties reads a flat YAML mapping of property names to values.
func loadProperties(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var props map[string]string
	if err := yaml.Unmarshal(b, &props); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return props, nil
}
