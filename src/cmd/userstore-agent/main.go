package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/agent"
	"github.com/rinq/userstore-go/src/internal/amqpx"
	"github.com/rinq/userstore-go/src/userstore/options"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		broker   string
		topic    string
		tenant   string
		fixture  string
		preFetch int
		debug    bool
	)

	cmd := &cobra.Command{
		Use:           "userstore-agent",
		Short:         "Answer user store requests from a YAML directory fixture",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := agent.LoadDirectoryFile(fixture)
			if err != nil {
				return err
			}

			logger := &twelf.StandardLogger{CaptureDebug: debug}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d := &amqpx.Dialer{Product: "userstore-agent", Logger: logger}
			sub, err := d.Subscribe(ctx, broker, topic, bindingPattern(tenant), preFetch)
			if err != nil {
				return err
			}
			defer sub.Close()

			logger.Log("answering requests published to '%s' as %s", topic, bindingPattern(tenant))

			a := &agent.Agent{
				Directory: dir,
				Logger:    logger,
			}

			err = a.Run(ctx, sub)
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&broker, "broker", amqpx.DefaultURL, "broker URL")
	fs.StringVar(&topic, "topic", options.DefaultRequestTopic, "request topic")
	fs.StringVar(&tenant, "tenant", "", "only answer requests made on behalf of this tenant")
	fs.StringVarP(&fixture, "fixture", "f", "directory.yaml", "YAML directory fixture")
	fs.IntVar(&preFetch, "pre-fetch", 10, "maximum number of unacknowledged requests")
	fs.BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// bindingPattern returns the routing pattern that matches every request made
// on behalf of tenant.
func bindingPattern(tenant string) string {
	if tenant == "" {
		return "#"
	}

	return tenant + ".#"
}
