/*------------------------------------------------------------------------------
* rnxhead.go : rinex observation header functions
*
* notes  : compact rinex (hatanaka) files carry the rinex header verbatim after
*          the two CRINEX lines, so the same functions serve .rnx and .crx.
*          gzip compressed files (*.gz) are decompressed on the fly.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	LABEL_APPROXPOS = "APPROX POSITION XYZ"
	LABEL_MARKER    = "MARKER NAME"
	LABEL_VERSION   = "RINEX VERSION / TYPE"
	LABEL_ENDHEAD   = "END OF HEADER"
)

const numPattern = `([-+]?(?:\d+(?:\.\d*)?|\.\d+))`

var xyzPattern = regexp.MustCompile(numPattern + `\s+` + numPattern + `\s+` + numPattern)

/* parse approx position line ------------------------------------------------*/
func decodeApproxPos(line string) (CartesianPosition, bool) {
	m := xyzPattern.FindStringSubmatch(line)
	if m == nil {
		return CartesianPosition{}, false
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return CartesianPosition{}, false
		}
		v[i] = f
	}
	return CartesianPosition{X: v[0], Y: v[1], Z: v[2]}, true
}

/* extract approx position -----------------------------------------------------
* extract the approximate receiver position from rinex header lines
* args   : io.Reader r      I   header text, read line by line
* return : ecef position (m)
*          ErrNotFound if no APPROX POSITION XYZ line exists
*          *ParseError if the line exists but holds no x/y/z numbers
* notes  : the first line containing the label wins, scanning stops at the
*          first matching line.
*-----------------------------------------------------------------------------*/
func ExtractPosition(r io.Reader) (CartesianPosition, error) {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if !strings.Contains(line, LABEL_APPROXPOS) {
			continue
		}
		pos, ok := decodeApproxPos(line)
		if !ok {
			return CartesianPosition{}, &ParseError{Src: "rinex header", Line: n, Text: line,
				Msg: "invalid approx position xyz"}
		}
		Trace(4, "extractpos: line=%d x=%.4f y=%.4f z=%.4f\n", n, pos.X, pos.Y, pos.Z)
		return pos, nil
	}
	if err := sc.Err(); err != nil {
		return CartesianPosition{}, errors.Wrap(err, "read rinex header")
	}
	return CartesianPosition{}, ErrNotFound
}

/* open observation file, gunzip if compressed -------------------------------*/
func OpenObsFile(path string) (io.ReadCloser, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open obs file %s", path)
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".z") {
		fp.Close()
		return nil, errors.Errorf("unix compressed obs file %s not supported, uncompress first", path)
	}
	if !strings.HasSuffix(lower, ".gz") {
		return fp, nil
	}
	zr, err := gzip.NewReader(fp)
	if err != nil {
		fp.Close()
		return nil, errors.Wrapf(err, "gunzip obs file %s", path)
	}
	return &gzipFile{Reader: zr, fp: fp}, nil
}

type gzipFile struct {
	*gzip.Reader
	fp *os.File
}

func (f *gzipFile) Close() error {
	err := f.Reader.Close()
	if cerr := f.fp.Close(); err == nil {
		err = cerr
	}
	return err
}

/* extract approx position from file -------------------------------------------
* args   : string path      I   rinex/compact rinex obs file (optionally .gz)
* return : as ExtractPosition, ParseError.Src set to the file path
*-----------------------------------------------------------------------------*/
func ExtractPositionFile(path string) (CartesianPosition, error) {
	rd, err := OpenObsFile(path)
	if err != nil {
		return CartesianPosition{}, err
	}
	defer rd.Close()

	pos, err := ExtractPosition(rd)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Src = path
	}
	return pos, err
}

/* rinex header label (column 61-) -------------------------------------------*/
func rnxLabel(line string) string {
	if len(line) <= RNXLABEL {
		return ""
	}
	return strings.TrimSpace(line[RNXLABEL:])
}

/* read rinex observation header -----------------------------------------------
* read rinex version, marker name and approx position up to END OF HEADER
* args   : io.Reader r      I   obs file contents
* return : header fields, HasPos false if no approx position line
*          *ParseError on malformed version or approx position lines or if
*          the input ends before END OF HEADER
* notes  : APPROX POSITION XYZ is matched anywhere in the line and the first
*          such line wins, as in ExtractPosition.
*-----------------------------------------------------------------------------*/
func ReadObsHeader(r io.Reader) (ObsHeader, error) {
	var hdr ObsHeader
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		label := rnxLabel(line)

		switch {
		case strings.Contains(label, LABEL_VERSION):
			ver, err := strconv.ParseFloat(strings.TrimSpace(line[:9]), 64)
			if err != nil {
				return hdr, &ParseError{Src: "rinex header", Line: n, Text: line, Msg: "invalid rinex version"}
			}
			hdr.Version = ver
			if len(line) > 20 {
				hdr.Type = strings.TrimSpace(line[20:21])
			}
		case strings.Contains(label, LABEL_MARKER):
			hdr.Marker = strings.TrimSpace(line[:RNXLABEL])
		case !hdr.HasPos && strings.Contains(line, LABEL_APPROXPOS):
			pos, ok := decodeApproxPos(line)
			if !ok {
				return hdr, &ParseError{Src: "rinex header", Line: n, Text: line, Msg: "invalid approx position xyz"}
			}
			hdr.Pos, hdr.HasPos = pos, true
		case strings.Contains(label, LABEL_ENDHEAD):
			Trace(4, "readobsh: ver=%.2f marker=%s pos=%v\n", hdr.Version, hdr.Marker, hdr.HasPos)
			return hdr, nil
		}
	}
	if err := sc.Err(); err != nil {
		return hdr, errors.Wrap(err, "read rinex header")
	}
	return hdr, &ParseError{Src: "rinex header", Text: LABEL_ENDHEAD, Msg: "header ends without end of header"}
}

/* read rinex observation header from file -----------------------------------*/
func ReadObsHeaderFile(path string) (ObsHeader, error) {
	rd, err := OpenObsFile(path)
	if err != nil {
		return ObsHeader{}, err
	}
	defer rd.Close()

	hdr, err := ReadObsHeader(rd)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Src = path
	}
	return hdr, err
}
