package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-satmeta/catalog"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/util"
	cli "gopkg.in/urfave/cli.v1"
)

const defaultIndexFrequency = 24 * time.Hour

var indexFlags = []cli.Flag{
	cli.DurationFlag{Name: "every", Usage: "Re-index at this interval and serve the job status instead of indexing once"},
}

func indexAction(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = util.GetDataRoot()
	}
	if root == "" {
		return fmt.Errorf("index needs a root directory or %s", util.SATMETA_ROOT)
	}

	store, err := catalog.NewStore(getDbConnectionFunc)
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := satmeta.NewRunnerFromEnv(satmeta.Options{}, getMetrics())
	if err != nil {
		return err
	}
	importer := catalog.NewImporter(root, runner, store, nil)

	every := c.Duration("every")
	if every == 0 {
		stats, err := importer.Import(context.Background())
		fmt.Fprintln(c.App.Writer, stats)
		return err
	}
	if every < time.Minute {
		util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf("Specified duration of %v is too small. Setting to default.", every))
		every = defaultIndexFrequency
	}

	//Create the channel that sends the start messages to the Importer.
	trigger := make(chan struct{}, 1)

	//Start the sleep/import loop.
	go importer.ImportWhile(context.Background(), trigger, every)

	//Set up an http router
	router := mux.NewRouter()
	router.HandleFunc("/index/", handleImportStatus(importer))
	router.HandleFunc("/index/start", handleForceStartImport(importer, trigger))

	launchServerFunc(util.GetPortStr(), router)
	return nil
}

// importStatus reports the import state
type importStatus interface {
	Status() (catalog.JobStats, bool)
}

// handleImportStatus writes out the status of the importer.
func handleImportStatus(imp importStatus) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		previous, running := imp.Status()
		if running {
			fmt.Fprintln(writer, "Status: Running")
		} else {
			fmt.Fprintln(writer, "Status: Sleeping")
		}
		fmt.Fprintln(writer, "Previous job:", previous)
	}
}

// handleForceStartImport asks the import loop to start a job and returns the status to the user.
func handleForceStartImport(imp importStatus, trigger chan<- struct{}) http.HandlerFunc {
	status := handleImportStatus(imp)
	return func(writer http.ResponseWriter, req *http.Request) {
		select {
		case trigger <- struct{}{}:
			fmt.Fprintln(writer, "Begin job request submitted.")
		default:
			fmt.Fprintln(writer, "Error submitting request.")
		}
		status(writer, req)
	}
}
