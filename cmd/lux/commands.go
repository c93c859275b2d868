package main

import (
	"context"
	"os"

	"github.com/oarkflow/cli/contracts"
)

// exit is replaced in tests.
var exit = os.Exit

func finish(code int) error {
	if code != exitOK {
		exit(code)
	}
	return nil
}

type RunCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *RunCommand) Signature() string {
	return "run"
}

func (c *RunCommand) Description() string {
	return "Runs a script file. Usage: run <file.lux>"
}

func (c *RunCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *RunCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.runFile(ctx.Argument(0)))
}

type ReplCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *ReplCommand) Signature() string {
	return "repl"
}

func (c *ReplCommand) Description() string {
	return "Starts an interactive session. Type :quit to leave."
}

func (c *ReplCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *ReplCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.repl())
}

type TokensCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *TokensCommand) Signature() string {
	return "tokens"
}

func (c *TokensCommand) Description() string {
	return "Prints the token stream of a script as JSON."
}

func (c *TokensCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *TokensCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.tokens(ctx.Argument(0)))
}

type AstCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *AstCommand) Signature() string {
	return "ast"
}

func (c *AstCommand) Description() string {
	return "Prints the syntax tree of a script as JSON."
}

func (c *AstCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *AstCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.ast(ctx.Argument(0)))
}

type FmtCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *FmtCommand) Signature() string {
	return "fmt"
}

func (c *FmtCommand) Description() string {
	return "Prints a script in canonical form."
}

func (c *FmtCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *FmtCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.format(ctx.Argument(0)))
}

type CheckCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *CheckCommand) Signature() string {
	return "check"
}

func (c *CheckCommand) Description() string {
	return "Scans and parses a script without running it; prints diagnostics as JSON."
}

func (c *CheckCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *CheckCommand) Handle(ctx contracts.Context) error {
	return finish(c.app.check(ctx.Argument(0)))
}

type BatchCommand struct {
	extend contracts.Extend
	app    *app
}

func (c *BatchCommand) Signature() string {
	return "batch"
}

func (c *BatchCommand) Description() string {
	return "Runs several scripts concurrently, each in its own interpreter."
}

func (c *BatchCommand) Extend() contracts.Extend {
	return c.extend
}

func (c *BatchCommand) Handle(ctx contracts.Context) error {
	var paths []string
	for i := 0; ; i++ {
		arg := ctx.Argument(i)
		if arg == "" {
			break
		}
		paths = append(paths, arg)
	}
	return finish(c.app.batch(context.Background(), paths))
}
