// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

var commands = cli.Commands{
	cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "Parse the metadata of one or more products and print it as GeoJSON",
		ArgsUsage: "<product path>...",
		Flags:     parseFlags,
		Action:    parseAction,
	},
	cli.Command{
		Name:      "index",
		Aliases:   []string{"i"},
		Usage:     "Parse every product below a directory into the catalog",
		ArgsUsage: "[root]",
		Flags:     indexFlags,
		Action:    indexAction,
	},
	cli.Command{
		Name:      "s1-search",
		Usage:     "List the non-empty Sentinel-1 products of a directory",
		ArgsUsage: "<dir>",
		Flags:     searchFlags,
		Action:    searchS1Action,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the bf-satmeta webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:      "migrate",
		Aliases:   []string{"m"},
		Usage:     "Update database schema",
		ArgsUsage: "[up|down|status|version]",
		Action:    migrateDatabaseAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the bf-satmeta CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-satmeta"
	app.Usage = "Extract satellite product metadata"
	app.Version = version
	app.Commands = commands
	return
}

func versionAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, version)
	return err
}
