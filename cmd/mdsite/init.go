package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// initFlags holds flags for the init command.
type initFlags struct {
	title string
	quiet bool
}

func parseInitFlags(args []string, env *Environment) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := newFlagSet("init", env.Stderr, printInitUsage)
	fs.StringVar(&f.title, "title", "My Site", "site title")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

const samplePost = `---
date: %s
description: A first post.
---
# Hello

Edit this file, then run ` + "`mdsite serve`" + ` to see it.

## Code

` + "```go" + `
fmt.Println("hello")
` + "```" + `
`

// runInit writes a config file and a first post into a site directory.
// Existing files are never overwritten.
func runInit(args []string, env *Environment) error {
	f, positional, err := parseInitFlags(args, env)
	if err != nil {
		return err
	}
	root := "."
	switch len(positional) {
	case 0:
	case 1:
		root = positional[0]
	default:
		return fmt.Errorf("%w: init takes at most one site directory", ErrUsage)
	}

	cfg := config.DefaultConfig()
	cfg.Title = f.title
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfgPath := config.SearchPaths(root)[0]
	postPath := filepath.Join(root, cfg.PostsDir, "hello.md")
	if fileutil.FileExists(postPath) {
		return fmt.Errorf("%w: %s already exists", os.ErrExist, postPath)
	}
	if err := config.Write(cfgPath, cfg); err != nil {
		return err
	}

	post := fmt.Sprintf(samplePost, env.Now().Format(time.DateOnly))
	if err := fileutil.WriteFile(postPath, []byte(post)); err != nil {
		return err
	}

	if !f.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", cfgPath)
		fmt.Fprintf(env.Stdout, "Created %s\n", postPath)
	}
	return nil
}
