package main

import (
	"encoding/json"
	"log"
	"os"
)

func endIfErr(e error) {
	if e != nil {
		eLog := log.New(os.Stderr, "", 0)
		eLog.Fatalln(e)
	}
}

// printJSON writes v to stdout as a single JSON line. Data goes to stdout,
// faults to stderr.
func printJSON(v interface{}) {
	data, err := json.Marshal(v)
	endIfErr(err)

	oLog := log.New(os.Stdout, "", 0)
	oLog.Println(string(data))
}
