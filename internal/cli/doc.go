// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli wires configuration, logging, the search client and storage
into the carchat commands.

# Commands

	carchat                      full-screen chat (--resume <id>)
	carchat ask <request>        one search (--json, --details N)
	carchat details <id>         one detail card
	carchat chat                 line-oriented chat with history
	carchat history ...          list, show, delete, export, viewed
	carchat config ...           show, path, get, set, keys
	carchat languages            supported languages
	carchat version

Global flags: --lang, --config, --verbose.

# Usage

	func main() {
		os.Exit(cli.Execute())
	}
*/
package cli
