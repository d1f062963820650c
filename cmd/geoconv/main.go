// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	m "github.com/mkhts/geoconv"
)

type cmdOpt struct {
	datum   string
	method  string
	origin  string
	reverse bool
	args    []string
}

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseArgs() (cmdOpt, error) {
	var opt cmdOpt
	flag.StringVar(&opt.datum, "datum", "WGS84", "datum name ("+strings.Join(m.Datums(), ", ")+")")
	flag.StringVar(&opt.method, "method", "karney", "reverse method (karney, sudano, veness, you)")
	flag.StringVar(&opt.origin, "origin", "", "\"lat lon height\" origin for local-frame conversion")
	flag.BoolVar(&opt.reverse, "r", false, "reverse conversion (x y z -> lat lon height)")
	flag.Parse()
	opt.args = flag.Args()
	if n := len(opt.args); n != 0 && n != 3 {
		return opt, fmt.Errorf("want a \"lat lon height\" or \"x y z\" triple, got %d arguments", n)
	}
	return opt, nil
}

// Main application processing
func runApplication(opt cmdOpt) error {

	ell, err := m.DatumByName(opt.datum)
	if err != nil {
		return fmt.Errorf("failed to resolve datum: %w", err)
	}
	method, err := m.ReverseMethodByName(opt.method)
	if err != nil {
		return fmt.Errorf("failed to resolve method: %w", err)
	}

	conv, err := newConverter(ell, method, opt)
	if err != nil {
		return fmt.Errorf("failed to build converter: %w", err)
	}

	// Triples given as arguments convert in one shot, otherwise
	// process stdin line by line.
	if len(opt.args) > 0 {
		return convertLine(conv, strings.Join(opt.args, " "), os.Stdout)
	}
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := convertLine(conv, line, os.Stdout); err != nil {
			return err
		}
	}
	return sc.Err()
}

// One conversion direction bound to an engine
type converter func(v [3]float64) (m.Result, error)

func newConverter(ell *m.Ellipsoid, method m.ReverseMethod, opt cmdOpt) (converter, error) {

	// Local-frame conversion when an origin is given
	if opt.origin != "" {
		var org m.GeodeticPoint
		if err := org.Set(opt.origin); err != nil {
			return nil, fmt.Errorf("invalid origin: %w", err)
		}
		le, err := m.NewLocalEngine(ell, method, org.Lat, org.Lon, org.Height)
		if err != nil {
			return nil, err
		}
		if opt.reverse {
			return func(v [3]float64) (m.Result, error) {
				return le.Reverse(v[0], v[1], v[2])
			}, nil
		}
		return func(v [3]float64) (m.Result, error) {
			return le.Forward(v[0], v[1], v[2]), nil
		}, nil
	}

	e, err := m.NewEngine(ell, method)
	if err != nil {
		return nil, err
	}
	if opt.reverse {
		return func(v [3]float64) (m.Result, error) {
			return e.Reverse(v[0], v[1], v[2])
		}, nil
	}
	return func(v [3]float64) (m.Result, error) {
		return e.Forward(v[0], v[1], v[2]), nil
	}, nil
}

func convertLine(conv converter, line string, w io.Writer) error {
	f := strings.Fields(line)
	if len(f) != 3 {
		return fmt.Errorf("failed to parse %q: want 3 fields, got %d", line, len(f))
	}
	var v [3]float64
	for i := range v {
		x, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return fmt.Errorf("failed to parse %q: %w", line, err)
		}
		v[i] = x
	}
	res, err := conv(v)
	if err != nil {
		return fmt.Errorf("failed to convert %q: %w", line, err)
	}
	_, err = fmt.Fprintln(w, res)
	return err
}
