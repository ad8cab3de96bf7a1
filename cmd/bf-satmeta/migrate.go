package main

import (
	"github.com/pressly/goose"
	cli "gopkg.in/urfave/cli.v1"

	_ "github.com/venicegeo/bf-satmeta/migrations"
	"github.com/venicegeo/bf-satmeta/util"
)

func migrateDatabaseAction(c *cli.Context) error {
	command := c.Args().First()
	if command == "" {
		command = "up"
	}

	database, err := getDbConnectionFunc(&util.BasicLogContext{})
	if err != nil {
		return err
	}
	defer database.Close()

	return goose.Run(command, database, ".")
}
