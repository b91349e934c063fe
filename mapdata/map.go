// Package mapdata holds the static landmark map the filter localizes
// against. The map is read-only for the filter's lifetime.
package mapdata

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Landmark is a known fixed point in the map frame.
type Landmark struct {
	ID int
	X  float64
	Y  float64
}

// Map is the landmark list in file order.
type Map struct {
	Landmarks []Landmark
}

// Load reads a landmark map file with one "x y id" row per landmark,
// whitespace separated. Blank lines are skipped.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Map{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("map %s line %d: want 3 fields, got %d", path, line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("map %s line %d: bad x %q", path, line, fields[0])
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("map %s line %d: bad y %q", path, line, fields[1])
		}
		id, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("map %s line %d: bad id %q", path, line, fields[2])
		}
		m.Landmarks = append(m.Landmarks, Landmark{ID: id, X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
