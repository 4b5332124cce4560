package main

import (
	"flag"
	"fmt"
	"os"

	"gjl/process/proofwatch"
)

func main() {
	dir := flag.String("dir", "uploads/proofs", "directory to scan for receipt images")
	profileID := flag.Uint("profile-id", 0, "profile to attribute ingested receipts to (default: admin)")
	minConf := flag.Float64("min-conf", 0.15, "minimum OCR confidence to accept")
	dry := flag.Bool("dry-run", true, "dry-run: don't write to DB")
	watch := flag.Bool("watch", false, "keep watching the directory for new files")
	flag.Parse()

	if os.Getenv("DB_DSN") == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export and retry")
		os.Exit(2)
	}

	err := proofwatch.Run(proofwatch.Options{
		Dir:       *dir,
		ProfileID: uint(*profileID),
		MinConf:   *minConf,
		DryRun:    *dry,
		Watch:     *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}
