// Command sensorview negotiates, converts and inspects sensor view
// configurations and logical detection data.
//
// Usage:
//
//	sensorview negotiate -profile capability.json -in request.json [-out grant.bin] [-ledger ledger.db]
//	sensorview encode    -kind config|detections -in record.json -out record.bin
//	sensorview decode    -kind config|detections -in record.bin
//	sensorview validate  -kind config|grant|detections -in record.(json|bin)
//	sensorview plot      -in request.json [-dir plots]
//	sensorview migrate   -ledger ledger.db up|down|version
//	sensorview version
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatalf("sensorview: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "negotiate":
		return runNegotiate(rest, stdout)
	case "encode":
		return runEncode(rest, stdout)
	case "decode":
		return runDecode(rest, stdout)
	case "validate":
		return runValidate(rest, stdout)
	case "plot":
		return runPlot(rest, stdout)
	case "migrate":
		return runMigrate(rest, stdout)
	case "version":
		return runVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: sensorview <command> [flags]

Commands:
  negotiate  resolve a requested configuration against a capability profile
  encode     convert a JSON record to its binary wire form
  decode     print a binary record as JSON
  validate   check a record against its range and count invariants
  plot       render radar antenna diagrams to PNG
  migrate    manage the ledger schema (up, down, version)
  version    print build and schema versions`)
}
