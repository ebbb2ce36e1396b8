// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export_test

import (
	"fmt"
	"os"

	"github.com/jeranaias/carchat/internal/export"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
)

// ExampleExportConversation writes a transcript to a temporary directory.
func ExampleExportConversation() {
	conv := model.NewConversation(locale.English)
	conv.AddMessage(model.NewUserMessage("Family hybrid under 25k"))
	conv.AddMessage(model.NewAssistantMessage("I found some vehicles for you."))

	dir, err := os.MkdirTemp("", "carchat-export")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	opts := export.DefaultOptions()
	opts.OutputDir = dir

	path, err := export.ExportConversation(conv, export.FormatMarkdown, opts)
	if err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	_, err = os.Stat(path)
	fmt.Println(err == nil)
	// Output: true
}
