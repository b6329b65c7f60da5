/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func newLogger(cfg config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// newClient wires the gateway and session store the way every client
// command needs them. CheckSession runs before the command body so a
// persisted session is restored first.
func newClient(cmd *cobra.Command) (config.Config, *gateway.Gateway, *session.Store, *zap.Logger) {
	cfg := config.LoadConfig()
	logger := newLogger(cfg)

	gw := gateway.New(cfg, gateway.NopNavigator{}, logger)
	creds := session.NewFileCredentialStore(cfg.StateDir)
	sess := session.NewStore(cfg, gw, creds, gateway.NopNavigator{}, logger)
	sess.CheckSession(cmd.Context())

	return cfg, gw, sess, logger
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password failed: %w", err)
	}
	return string(password), nil
}
