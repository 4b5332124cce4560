package main

import (
	"flag"
	"fmt"
	"os"

	"gjl/process/report"
)

func main() {
	month := flag.String("month", "", "report month in YYYY-MM form")
	list := flag.Bool("list", false, "also list the matching ledger rows")
	flag.Parse()

	if *month == "" {
		fmt.Fprintln(os.Stderr, "usage: cmd_report -month YYYY-MM [-list]")
		os.Exit(2)
	}
	report.RunReport(*month, *list)
}
