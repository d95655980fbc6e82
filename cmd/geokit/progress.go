// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressBar reports resolved candidates on stderr. It is a no-op unless stderr is a
// terminal.
type progressBar struct {
	bar *progressbar.ProgressBar
}

func newProgressBar(total int) *progressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return &progressBar{}
	}
	return &progressBar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Resolving candidates"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)}
}

func (p *progressBar) add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressBar) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
