package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/sensorview/internal/antennaplot"
	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/config"
	"github.com/banshee-data/sensorview/internal/detection"
	"github.com/banshee-data/sensorview/internal/ledger"
	"github.com/banshee-data/sensorview/internal/negotiate"
	"github.com/banshee-data/sensorview/internal/security"
	"github.com/banshee-data/sensorview/internal/sensorview"
	"github.com/banshee-data/sensorview/internal/version"
	"github.com/banshee-data/sensorview/internal/wire"
)

const (
	kindConfig     = "config"
	kindGrant      = "grant"
	kindDetections = "detections"
)

func isJSON(path string) bool { return filepath.Ext(path) == ".json" }

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("-in is required: %w", errUsage)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// readConfig loads a configuration from JSON (.json) or wire encoding.
func readConfig(path string) (*sensorview.SensorViewConfiguration, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if isJSON(path) {
		c := &sensorview.SensorViewConfiguration{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return c, nil
	}
	return wire.UnmarshalSensorViewConfiguration(data)
}

func readDetections(path string) (*detection.LogicalDetectionData, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if isJSON(path) {
		d := &detection.LogicalDetectionData{}
		if err := json.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return d, nil
	}
	return wire.UnmarshalLogicalDetectionData(data)
}

// writeOutput writes data to path, choosing JSON or wire encoding by
// extension.
func writeOutput(path string, v interface{}, wireBytes func() []byte) error {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	var data []byte
	if isJSON(path) {
		var err error
		if data, err = json.MarshalIndent(v, "", "  "); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	} else {
		data = wireBytes()
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runNegotiate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("negotiate", flag.ContinueOnError)
	profilePath := fs.String("profile", config.DefaultProfilePath, "simulator capability profile (JSON)")
	in := fs.String("in", "", "requested configuration (.json or wire)")
	out := fs.String("out", "", "write the grant here (.json or wire)")
	ledgerPath := fs.String("ledger", "", "record the round in this SQLite ledger")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	profile, err := config.LoadCapabilityProfile(*profilePath)
	if err != nil {
		return err
	}
	req, err := readConfig(*in)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	r := negotiate.NewResolver(profile.ToCapability())
	granted, narrowings := r.ResolveWithReport(req)

	round := &ledger.Round{Requested: req, Granted: granted, Narrowings: narrowings}
	if first, ok := r.FirstUpdate(granted); ok {
		round.FirstUpdate = &first
	}

	if *out != "" {
		if err := writeOutput(*out, granted, func() []byte { return wire.MarshalSensorViewConfiguration(granted) }); err != nil {
			return err
		}
	}
	if *ledgerPath != "" {
		l, err := ledger.Open(*ledgerPath)
		if err != nil {
			return err
		}
		defer l.Close()
		if err := l.RecordRound(context.Background(), round); err != nil {
			return err
		}
	}
	return printJSON(stdout, round)
}

func runEncode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	kind := fs.String("kind", kindConfig, "record kind: config or detections")
	in := fs.String("in", "", "JSON input")
	out := fs.String("out", "", "wire output")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *out == "" || isJSON(*out) {
		return fmt.Errorf("-out must name a non-JSON file: %w", errUsage)
	}

	var n int
	switch *kind {
	case kindConfig, kindGrant:
		c, err := readConfig(*in)
		if err != nil {
			return err
		}
		b := wire.MarshalSensorViewConfiguration(c)
		n = len(b)
		if err := writeOutput(*out, c, func() []byte { return b }); err != nil {
			return err
		}
	case kindDetections:
		d, err := readDetections(*in)
		if err != nil {
			return err
		}
		b := wire.MarshalLogicalDetectionData(d)
		n = len(b)
		if err := writeOutput(*out, d, func() []byte { return b }); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown kind %q: %w", *kind, errUsage)
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", n, *out)
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	kind := fs.String("kind", kindConfig, "record kind: config or detections")
	in := fs.String("in", "", "wire input")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	switch *kind {
	case kindConfig, kindGrant:
		c, err := readConfig(*in)
		if err != nil {
			return err
		}
		return printJSON(stdout, c)
	case kindDetections:
		d, err := readDetections(*in)
		if err != nil {
			return err
		}
		return printJSON(stdout, d)
	}
	return fmt.Errorf("unknown kind %q: %w", *kind, errUsage)
}

func runValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	kind := fs.String("kind", kindConfig, "record kind: config, grant or detections")
	in := fs.String("in", "", "record (.json or wire)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	var err error
	switch *kind {
	case kindConfig, kindGrant:
		var c *sensorview.SensorViewConfiguration
		if c, err = readConfig(*in); err != nil {
			return err
		}
		if *kind == kindGrant {
			err = c.ValidateGranted()
		} else {
			err = c.Validate()
		}
		if err == nil && c.Version != nil && !c.Version.Compatible(*common.CurrentVersion()) {
			err = fmt.Errorf("interface version %s is not compatible with %s", c.Version, common.CurrentVersion())
		}
	case kindDetections:
		var d *detection.LogicalDetectionData
		if d, err = readDetections(*in); err != nil {
			return err
		}
		err = d.Validate()
	default:
		return fmt.Errorf("unknown kind %q: %w", *kind, errUsage)
	}
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", *in, err)
	}
	fmt.Fprintf(stdout, "%s: valid %s\n", *in, *kind)
	return nil
}

func runPlot(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	in := fs.String("in", "", "configuration with radar records (.json or wire)")
	dir := fs.String("dir", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	c, err := readConfig(*in)
	if err != nil {
		return err
	}
	if err := security.ValidateOutputPath(*dir); err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", *dir, err)
	}

	written := 0
	for _, r := range c.Radar {
		path, err := antennaplot.Save(r, *dir)
		if err != nil {
			if errors.Is(err, antennaplot.ErrNoDiagram) {
				continue
			}
			return err
		}
		fmt.Fprintln(stdout, path)
		written++
	}
	if written == 0 {
		return fmt.Errorf("no radar record in %s carries an antenna diagram", *in)
	}
	return nil
}

func runMigrate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	ledgerPath := fs.String("ledger", "sensorview.db", "SQLite ledger path")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("migrate needs one action: %w", errUsage)
	}

	l, err := ledger.OpenDB(*ledgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	switch action := fs.Arg(0); action {
	case "up":
		err = l.MigrateUp()
	case "down":
		err = l.MigrateDown()
	case "version":
	default:
		return fmt.Errorf("unknown migrate action %q: %w", action, errUsage)
	}
	if err != nil {
		return err
	}

	v, dirty, err := l.MigrateVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "schema version %d (dirty: %t)\n", v, dirty)
	return nil
}

func runVersion(stdout io.Writer) error {
	fmt.Fprintf(stdout, "sensorview %s (%s, built %s), interface %s\n",
		version.Version, version.GitSHA, version.BuildTime, common.CurrentVersion())
	return nil
}
