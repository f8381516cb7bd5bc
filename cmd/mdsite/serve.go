package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdsite/internal/server"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

func parseServeFlags(args []string, env *Environment) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", env.Stderr, printServeUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default: server.addr, 127.0.0.1:1024)")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env)
	if err != nil {
		return err
	}
	switch len(positional) {
	case 0:
	case 1:
		f.common.site = positional[0]
	default:
		return fmt.Errorf("%w: serve takes at most one site directory", ErrUsage)
	}

	log := newLogger(env.Stderr, f.common)
	site, err := openSite(f.common, log)
	if err != nil {
		return configHint(err, f.common.site)
	}

	addr := f.addr
	if addr == "" {
		addr = site.Config().Server.Addr
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	return listenHint(server.Run(ctx, site, addr, log), addr)
}
