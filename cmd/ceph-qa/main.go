package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/cli"
)

func main() {
	try.Do(func() {
		cli.Main(os.Args, os.Stderr)
	}).Catch(cli.Error, func(err *errors.Error) {
		// Errors marked as valid user-facing issues get a nice
		// pretty-printed route out, and may include specified exit codes.
		if isDebugMode() {
			// in debug-mode, repanic all the way to death so that we get all of golang's built in log features.
			panic(err)
		}
		fmt.Fprintf(os.Stderr,
			"ceph-qa was unable to complete your request!\n"+
				"%s\n",
			err.Message())
		code, ok := errors.GetData(err, cli.ExitCodeKey).(cli.ExitCode)
		if !ok {
			code = cli.EXIT_USER
		}
		os.Exit(int(code))
	}).CatchAll(func(err error) {
		// Errors that aren't marked as valid user-facing issues should be
		// logged in preparation for a bug report.
		if isDebugMode() {
			panic(err)
		}
		logPath, saveErr := saveErrorReport(err)
		var saveMsg string
		if saveErr == nil {
			saveMsg = fmt.Sprintf("We've logged the full error to a file: %q.  Please include this in the report.", logPath)
		} else {
			saveMsg = fmt.Sprintf("Additionally, we were unable to save a full log of the problem (\"%s\").", saveErr)
		}
		fmt.Fprintf(os.Stderr,
			"ceph-qa encountered a serious issue and was unable to complete your request!\n"+
				"Please file an issue to help us fix it.\n"+
				saveMsg+"\n"+
				"\n"+
				"This is the short version of the problem:\n"+
				"%s\n",
			err)
		os.Exit(int(cli.EXIT_UNKNOWNPANIC))
	}).Done()
}

func isDebugMode() bool {
	return len(os.Getenv("DEBUG")) != 0 || len(os.Getenv("CEPH_QA_DEBUG")) != 0
}

func saveErrorReport(caught error) (string, error) {
	logFile, err := ioutil.TempFile(os.TempDir(), "ceph-qa-error-report-")
	if err != nil {
		return "", err
	}
	defer logFile.Close()
	fmt.Fprintf(logFile, "ceph-qa error report\n")
	fmt.Fprintf(logFile, "====================\n")
	fmt.Fprintf(logFile, "Date: %s\n", time.Now())
	fmt.Fprintf(logFile, "\n")
	fmt.Fprintf(logFile, "Full error:\n")
	fmt.Fprintf(logFile, "-----------\n")
	fmt.Fprintf(logFile, "%s\n", caught)
	return logFile.Name(), nil
}
