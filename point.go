// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//-------------------------------------------------------------------
// GeodeticPoint
//-------------------------------------------------------------------

// GeodeticPoint is a latitude [deg], longitude [deg], height [m]
// triple.
type GeodeticPoint struct {
	Lat    float64
	Lon    float64
	Height float64
}

// Set parses "lat lon height" from whitespace-separated fields.
func (p *GeodeticPoint) Set(s string) error {
	v, err := parse3(s)
	if err != nil {
		return err
	}
	p.Lat, p.Lon, p.Height = v[0], v[1], v[2]
	return nil
}

func (p *GeodeticPoint) String() string {
	return fmt.Sprintf("%.9f %.9f %.4f", p.Lat, p.Lon, p.Height)
}

//-------------------------------------------------------------------
// CartesianPoint
//-------------------------------------------------------------------

// CartesianPoint is an ECEF x, y, z triple [m].
type CartesianPoint struct {
	X float64
	Y float64
	Z float64
}

// Set parses "x y z" from whitespace-separated fields.
func (p *CartesianPoint) Set(s string) error {
	v, err := parse3(s)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = v[0], v[1], v[2]
	return nil
}

func (p *CartesianPoint) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f", p.X, p.Y, p.Z)
}

//-------------------------------------------------------------------
// LocalPoint
//-------------------------------------------------------------------

// LocalPoint is a point in a local frame [m]: X east, Y north, Z up.
type LocalPoint struct {
	X float64
	Y float64
	Z float64
}

// Elevation returns the angle above the local horizon [deg].
func (p *LocalPoint) Elevation() float64 {
	return atan2d(p.Z, math.Hypot(p.X, p.Y))
}

// Azimuth returns the bearing from local north, clockwise [deg] in
// (-180, 180].
func (p *LocalPoint) Azimuth() float64 {
	return atan2d(p.X, p.Y)
}

// Set parses "x y z" from whitespace-separated fields.
func (p *LocalPoint) Set(s string) error {
	v, err := parse3(s)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = v[0], v[1], v[2]
	return nil
}

func (p *LocalPoint) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f", p.X, p.Y, p.Z)
}

// Read three floats from a string
func parse3(s string) ([3]float64, error) {
	var v [3]float64
	f := strings.Fields(s)
	if len(f) != 3 {
		return v, fmt.Errorf("want 3 fields, got %d in %q", len(f), s)
	}
	for i := range v {
		x, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return v, err
		}
		v[i] = x
	}
	return v, nil
}
