package main

import (
	"log"
	"os"

	"github.com/studyflow/studyflow/core"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := newCommandLine(core.NewConfig())
	err := cli.run(os.Args)
	if cErr := cli.close(); cErr != nil {
		logger.Printf("closing storage: %v", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("error: %s", err)
		}
		os.Exit(1)
	}
}
