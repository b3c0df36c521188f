/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package cmd wires the classvm CLI: "dump" to parse and print a class
// file, "run" to load one and interpret its main method. Built with
// spf13/cobra, the same command framework mabhi256-jdiag and
// saferwall-pe use for an almost identical "parse a binary, report on
// it" CLI shape.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classvm/globals"
	"classvm/trace"
)

// ExitCode distinguishes the CLI's three non-zero failure classes from
// a plain cobra usage error, so main can choose the right process exit
// status without cobra's own error formatting getting in the way.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitFileError
	ExitParseError
	ExitUsage
)

// CLIError carries the exit code a failing command should produce
// alongside the human-readable cause cobra prints.
type CLIError struct {
	Code ExitCode
	Err  error
}

func (e *CLIError) Error() string { return e.Err.Error() }
func (e *CLIError) Unwrap() error { return e.Err }

var rootCmd = &cobra.Command{
	Use:           "classvm",
	Short:         "A class-file parser and bytecode interpreter",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	strict     bool
	traceLevel string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", true, "reject unrecognized attribute names instead of skipping them")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "info", "trace level: trace, fine, info, warning, severe")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(runCmd)
}

func setup() {
	globals.InitGlobals("classvm")
	globals.SetStrict(strict)
	trace.Init()
	if lvl, ok := parseLevel(traceLevel); ok {
		trace.SetLevel(lvl)
	}
}

// Execute runs the CLI and returns the process exit code to use.
func Execute() int {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { setup() }
	if err := rootCmd.Execute(); err != nil {
		var cliErr *CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintln(os.Stderr, cliErr.Err)
			return int(cliErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		return int(ExitUsage)
	}
	return int(ExitOK)
}

func parseLevel(s string) (trace.Level, bool) {
	switch s {
	case "trace":
		return trace.LevelTrace, true
	case "fine":
		return trace.LevelFine, true
	case "info":
		return trace.LevelInfo, true
	case "warning":
		return trace.LevelWarning, true
	case "severe":
		return trace.LevelSevere, true
	default:
		return trace.LevelInfo, false
	}
}
