package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ayusman/handycalc/internal/replay"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 when the replay matches, 1 on a fixture mismatch and 2 on
// usage or I/O errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "", "path to handycalc.db (recording mode)")
	recordingID := fs.String("recording", "", "recording ID to replay; empty lists recordings")
	fixturePath := fs.String("fixture", "", "path to fixture JSON (fixture mode)")
	holdSec := fs.Float64("hold", 0, "hold duration in seconds; 0 keeps the default")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if (*dbPath == "") == (*fixturePath == "") {
		fmt.Fprintln(stderr, "usage: replay -db path/to/handycalc.db [-recording id] [-hold sec]")
		fmt.Fprintln(stderr, "       replay -fixture path/to/fixture.json [-hold sec]")
		return 2
	}

	var opts []session.Option
	if *holdSec > 0 {
		opts = append(opts, session.WithHoldDuration(time.Duration(*holdSec*float64(time.Second))))
	}

	if *fixturePath != "" {
		return runFixtureMode(*fixturePath, opts, stdout, stderr)
	}
	return runDBMode(*dbPath, *recordingID, opts, stdout, stderr)
}

func runFixtureMode(path string, opts []session.Option, stdout, stderr io.Writer) int {
	fixture, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	res, err := fixture.Run(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "replay fixture: %v\n", err)
		return 2
	}

	if fixture.Description != "" {
		fmt.Fprintf(stdout, "fixture:    %s\n", fixture.Description)
	}
	printResult(stdout, res)

	if err := fixture.Check(res); err != nil {
		fmt.Fprintf(stdout, "FAIL: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "PASS")
	return 0
}

func runDBMode(dbPath, id string, opts []session.Option, stdout, stderr io.Writer) int {
	st, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	if id == "" {
		recs, err := st.Recordings().List()
		if err != nil {
			fmt.Fprintf(stderr, "list recordings: %v\n", err)
			return 2
		}
		if len(recs) == 0 {
			fmt.Fprintln(stdout, "no recordings")
			return 0
		}
		for _, r := range recs {
			fmt.Fprintf(stdout, "%s  %-20s %6d frames  %s\n", r.ID, r.Name, r.Frames, r.CreatedAt.Format(time.RFC3339))
		}
		return 0
	}

	rec, err := st.Recordings().GetByID(id)
	if err != nil {
		fmt.Fprintf(stderr, "get recording %s: %v\n", id, err)
		return 2
	}
	frames, err := replay.LoadRecording(st.Recordings(), id)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	if len(opts) == 0 {
		if sec, err := st.Settings().GetFloat(store.SettingHoldDuration); err == nil {
			opts = append(opts, session.WithHoldDuration(time.Duration(sec*float64(time.Second))))
		}
	}

	fmt.Fprintf(stdout, "recording:  %s (%s)\n", rec.Name, rec.ID)
	printResult(stdout, replay.Run(frames, opts...))
	return 0
}

func printResult(w io.Writer, res replay.Result) {
	fmt.Fprintf(w, "frames:     %d\n", res.Frames)
	fmt.Fprintf(w, "confirmed:  %s\n", strings.Join(replay.ConfirmedNames(res.Confirmed), " "))
	fmt.Fprintf(w, "expression: %s\n", res.Expression)
	if res.Error != "" {
		fmt.Fprintf(w, "result:     Error: %s\n", res.Error)
	} else {
		fmt.Fprintf(w, "result:     %s\n", res.Result)
	}
}
