/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"classvm/classfile"
	"classvm/classloader"
	"classvm/frame"
	"classvm/globals"
	"classvm/interpreter"
)

var runCmd = &cobra.Command{
	Use:   "run <file> <entry-class>",
	Short: "Load a class file and interpret its main method",
	Args:  cobra.ExactArgs(2),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	file, entryClass := args[0], args[1]

	data, closeFile, err := mapFile(file)
	if err != nil {
		return &CLIError{Code: ExitFileError, Err: err}
	}
	defer closeFile()

	cf, err := classfile.Parse(bytes.NewReader(data), globals.IsStrict())
	if err != nil {
		return &CLIError{Code: ExitParseError, Err: err}
	}

	reg := classloader.New()
	reg.Register(entryClass, cf)

	v, err := interpreter.Run(context.Background(), reg, entryClass)
	if err != nil {
		return &CLIError{Code: ExitParseError, Err: err}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", entryClass, formatValue(v))
	return nil
}

// formatValue renders a Value's meaningful field according to its
// category, since only one of Value's typed fields is live at a time.
func formatValue(v frame.Value) string {
	switch v.Cat {
	case frame.CategoryInt:
		return fmt.Sprintf("Int(%d)", v.I)
	case frame.CategoryLong:
		return fmt.Sprintf("Long(%d)", v.L)
	case frame.CategoryFloat:
		return fmt.Sprintf("Float(%g)", v.F)
	case frame.CategoryDouble:
		return fmt.Sprintf("Double(%g)", v.D)
	case frame.CategoryReference:
		return fmt.Sprintf("Reference(%v)", v.Ref)
	case frame.CategoryNull:
		return "Null"
	default:
		return "Void"
	}
}
