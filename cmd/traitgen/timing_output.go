package main

import (
	"fmt"
	"io"

	"traitgen/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	if len(report.Phases) == 0 {
		return
	}
	// TODO: добавить --timings=json, когда понадобится машинный вывод
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
