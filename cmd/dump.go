/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"bytes"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/spf13/cobra"

	"classvm/classfile"
	"classvm/globals"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Parse a class file and print its structure",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	data, closeFile, err := mapFile(args[0])
	if err != nil {
		return &CLIError{Code: ExitFileError, Err: err}
	}
	defer closeFile()

	cf, err := classfile.Parse(bytes.NewReader(data), globals.IsStrict())
	if err != nil {
		return &CLIError{Code: ExitParseError, Err: err}
	}

	printClassFile(cmd.OutOrStdout(), cf)
	return nil
}

// mapFile memory-maps name read-only, the same approach saferwall-pe
// uses to avoid copying an entire binary into a byte slice before
// parsing it. The returned closer unmaps and closes the file.
func mapFile(name string) ([]byte, func(), error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.Size() == 0 {
		f.Close()
		return nil, func() {}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return data, func() { data.Unmap(); f.Close() }, nil
}

func printClassFile(w interface{ Write([]byte) (int, error) }, cf *classfile.ClassFile) {
	name, err := cf.Name()
	if err != nil {
		name = "<unresolved>"
	}
	fmt.Fprintf(w, "class %s\n", name)
	fmt.Fprintf(w, "  version: %d.%d\n", cf.MajorVersion, cf.MinorVersion)
	fmt.Fprintf(w, "  flags:   0x%04X\n", uint16(cf.Flags))
	if superName, ok, err := cf.SuperName(); err == nil && ok {
		fmt.Fprintf(w, "  super:   %s\n", superName)
	}
	fmt.Fprintf(w, "  constant pool: %d entries\n", cf.Pool.Len())
	fmt.Fprintf(w, "  interfaces: %d\n", len(cf.Interfaces))
	fmt.Fprintf(w, "  fields: %d\n", len(cf.Fields))
	fmt.Fprintf(w, "  methods: %d\n", len(cf.Methods))
	for _, m := range cf.Methods {
		mname, _ := cf.Pool.Utf8At(m.NameIndex)
		desc, _ := cf.Pool.Utf8At(m.DescIndex)
		if code, ok := m.Code(); ok {
			fmt.Fprintf(w, "    %s%s  [Code: max_stack=%d max_locals=%d length=%d]\n",
				mname, desc, code.MaxStack, code.MaxLocals, len(code.Bytes))
		} else {
			fmt.Fprintf(w, "    %s%s\n", mname, desc)
		}
	}
}
