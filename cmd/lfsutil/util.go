package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sisatech/tablewriter"
	"github.com/spf13/pflag"
)

var _ pflag.Value = numbersFlag{}

// parseUint parses s as a base-10 or 0x-prefixed uint64, accepting the
// same formats a user might copy out of a PrintableSize in hex mode.
func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), hexOrDec(s), 64)
}

func hexOrDec(s string) int {
	if strings.HasPrefix(s, "0x") {
		return 16
	}
	return 10
}

// numbersMode selects how a PrintableSize renders.
type numbersMode uint8

const (
	numbersShort numbersMode = iota
	numbersDecimal
	numbersHex
)

// activeNumbersMode is package state rather than a field on numbersFlag
// itself: the flag value is consulted through PrintableSize.String from
// call sites that never see the pflag.Flag it came from, the same split
// the teacher's pkg/flag types draw between a flag's Part (key/usage)
// and the Value a command actually reads.
var activeNumbersMode = numbersShort

// numbersFlag is a pflag.Value for --numbers: a zero-size type whose
// String/Set/Type close over activeNumbersMode, registered with
// PersistentFlags().Var instead of StringVar-plus-parse-after-the-fact.
type numbersFlag struct{}

func (numbersFlag) Type() string { return "numbers" }

func (numbersFlag) String() string {
	switch activeNumbersMode {
	case numbersDecimal:
		return "dec"
	case numbersHex:
		return "hex"
	default:
		return "short"
	}
}

func (numbersFlag) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "short":
		activeNumbersMode = numbersShort
	case "dec", "decimal":
		activeNumbersMode = numbersDecimal
	case "hex", "hexadecimal":
		activeNumbersMode = numbersHex
	default:
		return fmt.Errorf("numbers mode must be one of 'dec', 'hex', or 'short'")
	}
	return nil
}

// PrintableSize is a wrapper around uint64 to alter its string formatting
// behaviour according to the active --numbers mode.
type PrintableSize uint64

var sizeSuffixes = [...]string{"", "K", "M", "G"}

// String returns a string representation of the PrintableSize, formatted
// according to the active --numbers mode.
func (c PrintableSize) String() string {
	switch activeNumbersMode {
	case numbersDecimal:
		return strconv.FormatUint(uint64(c), 10)
	case numbersHex:
		return fmt.Sprintf("%#x", uint64(c))
	default:
		return shortSize(uint64(c))
	}
}

// shortSize divides out whole factors of 1024, stopping at the largest
// suffix sizeSuffixes has or the first non-exact division.
func shortSize(x uint64) string {
	if x == 0 {
		return "0"
	}
	units := 0
	for units < len(sizeSuffixes)-1 && x%1024 == 0 {
		x /= 1024
		units++
	}
	return fmt.Sprintf("%d%s", x, sizeSuffixes[units])
}

// PlainTable prints header and rows as a left-aligned, borderless grid.
func PlainTable(header []string, rows [][]string) {
	if len(header) == 0 {
		panic(errors.New("no header provided"))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator("")

	table.Append(header)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
