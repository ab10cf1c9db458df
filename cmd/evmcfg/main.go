// Copyright 2024 The evmcfg Authors
// This file is part of the evmcfg library.
//
// The evmcfg library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcfg library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcfg library. If not, see <http://www.gnu.org/licenses/>.

// Command evmcfg recovers a control-flow graph from deployed EVM-family
// bytecode and renders it as Graphviz dot. All hex decoding and rendering
// happens here; the cfg package itself never imports a rendering library.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/wmntva/evmcfg/cfg"
	"github.com/wmntva/evmcfg/internal/log"
)

var (
	codeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "deployed bytecode, as a 0x-prefixed hex string",
		Required: true,
	}
	selectorFlag = &cli.StringFlag{
		Name:  "selector",
		Usage: "optional 4-byte entry selector, as a 0x-prefixed hex string",
	}
	symbolicFlag = &cli.BoolFlag{
		Name:  "symbolic",
		Usage: "also run the symbolic (abstract-interpretation) edge resolver",
		Value: true,
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable debug logging",
	}
)

func main() {
	app := &cli.App{
		Name:  "evmcfg",
		Usage: "recover and render a control-flow graph from EVM bytecode",
		Flags: []cli.Flag{codeFlag, selectorFlag, symbolicFlag, verboseFlag},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "evmcfg:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool(verboseFlag.Name) {
		log.SetLevel(log.LevelDebug)
	}

	code, err := hexutil.Decode(c.String(codeFlag.Name))
	if err != nil {
		return fmt.Errorf("decoding --code: %w", err)
	}

	var selector *[4]byte
	if raw := c.String(selectorFlag.Name); raw != "" {
		b, err := hexutil.Decode(raw)
		if err != nil {
			return fmt.Errorf("decoding --selector: %w", err)
		}
		if len(b) != 4 {
			return fmt.Errorf("--selector must be exactly 4 bytes, got %d", len(b))
		}
		var sel [4]byte
		copy(sel[:], b)
		selector = &sel
	}

	p := cfg.ParseBytecode(code, selector)
	p.GenConcreteEdges()
	if c.Bool(symbolicFlag.Name) {
		p.GenSymbolicEdges()
	}

	g := p.Render()
	out, err := dot.Marshal(g, "evmcfg", "", "  ")
	if err != nil {
		return fmt.Errorf("rendering dot output: %w", err)
	}

	_, err = os.Stdout.Write(out)
	return err
}
