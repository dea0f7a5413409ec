/*------------------------------------------------------------------------------
* gnssirprep.go : prepare gnss-ir station inputs from rinex observation files
*
* version : 0.1.0
* history : scan an observation directory, resolve station positions and
*           gnss-ir options per station and year
*-----------------------------------------------------------------------------*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	gnssir "github.com/CSolgaard/GNSS-IR/src"
)

var PROGNAME string = "gnssirprep"

/* help text -----------------------------------------------------------------*/
var help []string = []string{
	"",
	" usage: gnssirprep [option]...",
	"",
	" Scan a directory of RINEX observation files (RINEX 3 long names .rnx/.crx",
	" or RINEX 2 short names, optionally gzip compressed), group them by station",
	" and year, and report per station the day-of-year range, the station",
	" position (station table or APPROX POSITION XYZ of the RINEX header) and the",
	" GNSS-IR analysis options. Defaults of -d, -s and -t are read from the",
	" environment (GNSSIR_DATA, GNSSIR_STATIONS, GNSSIR_TRACE), a .env file in",
	" the working directory is loaded first.",
	"",
	" -?        print help",
	" -d dir    observation directory [.]",
	" -s file   station table file (toml) [built-in stations]",
	" -k file   gnss-ir options file applied to all stations [off]",
	" -o file   save gnss-ir options per station, %s/%S: station id,",
	"           %Y: year, %n: start doy [off]",
	" -t file   trace file [stderr]",
	" -x level  debug trace level (0:off) [0]"}

func printhelp(w io.Writer) {
	for _, v := range help {
		fmt.Fprintln(w, v)
	}
}

/* option with environment default -------------------------------------------*/
func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

type prepOpt struct {
	dir, stafile, optfile, outfile, tracefile string
	trace                                     int
}

/* read observation header ---------------------------------------------------
* read the header of an observation file. the approx position of a header
* that cannot be read as a whole is taken from the first APPROX POSITION XYZ
* line, the header error is kept if there is none.
*-----------------------------------------------------------------------------*/
func readHeader(path string) (gnssir.ObsHeader, error) {
	hdr, err := gnssir.ReadObsHeaderFile(path)
	var perr *gnssir.ParseError
	if err == nil || !errors.As(err, &perr) {
		return hdr, err
	}
	if !hdr.HasPos {
		pos, xerr := gnssir.ExtractPositionFile(path)
		if xerr != nil {
			return hdr, err
		}
		hdr.Pos, hdr.HasPos = pos, true
	}
	gnssir.Trace(2, "%v, approx position xyz taken from %s\n", err, path)
	return hdr, nil
}

/* prepare one station range -------------------------------------------------*/
func prepStation(w io.Writer, opt *prepOpt, tbl *gnssir.StationTable, sr gnssir.StationRange) error {
	sta, known := tbl.Lookup(sr.Station)
	if !known {
		gnssir.Trace(2, "station %s not in station table, default options\n", sr.Station)
	}
	if opt.optfile != "" {
		o, err := gnssir.LoadGnssirOpt(opt.optfile, sta.Opt)
		if err != nil {
			return err
		}
		sta.Opt = o
	}

	path := filepath.Join(opt.dir, sr.Files[0].Name)
	hdr, err := readHeader(path)
	if err != nil {
		return err
	}
	if len(hdr.Marker) >= 4 && !strings.EqualFold(hdr.Marker[:4], sr.Station) {
		gnssir.Trace(2, "marker name %s does not match station %s (%s)\n", hdr.Marker, sr.Station, path)
	}

	pos, err := gnssir.ResolvePosition(sta, hdr)
	if err != nil {
		return err
	}
	if d, ok := gnssir.PositionOffset(sta, hdr); ok && d > gnssir.MAXBASELINE {
		gnssir.Trace(2, "station %s: header position %.1f m from station table position\n", sr.Station, d)
	}

	fmt.Fprintf(w, "station  : %s %s\n", sr.Station, sta.Name)
	fmt.Fprintf(w, "year     : %d\n", sr.Year)
	fmt.Fprintf(w, "doy      : %s (%d files)\n", sr.Doys, len(sr.Files))
	if miss := sr.MissingDays(); len(miss) > 0 {
		fmt.Fprintf(w, "missing  : %v\n", miss)
	}
	fmt.Fprintf(w, "position : %.8f %.8f %.3f\n", pos.Lat, pos.Lon, pos.Hgt)
	if err := gnssir.WriteGnssirOpt(w, "", sta.Opt); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if opt.outfile != "" {
		file := gnssir.GenObsPath(opt.outfile, sr.Station, sr.Year, sr.Doys.Start)
		comment := fmt.Sprintf("%s gnss-ir options %s %d %s", PROGNAME, sr.Station, sr.Year, sr.Doys)
		if err := gnssir.SaveGnssirOpt(file, comment, sta.Opt); err != nil {
			return err
		}
		gnssir.Trace(3, "save options: %s\n", file)
	}
	return nil
}

/* run -------------------------------------------------------------------------
* args   : []string args    I   command line arguments (without program name)
*          io.Writer w      I   report output
*          func getenv      I   environment lookup
* return : exit status (0:ok, 1:error in one or more stations, 2:usage)
*-----------------------------------------------------------------------------*/
func run(args []string, w io.Writer, getenv func(string) string) int {
	var opt prepOpt

	fs := flag.NewFlagSet(PROGNAME, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opt.dir, "d", getEnv(getenv, "GNSSIR_DATA", "."), "")
	fs.StringVar(&opt.stafile, "s", getEnv(getenv, "GNSSIR_STATIONS", ""), "")
	fs.StringVar(&opt.optfile, "k", "", "")
	fs.StringVar(&opt.outfile, "o", "", "")
	fs.StringVar(&opt.tracefile, "t", getEnv(getenv, "GNSSIR_TRACE", ""), "")
	fs.IntVar(&opt.trace, "x", 0, "")
	showhelp := fs.Bool("?", false, "")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(w, "%s: %v\n", PROGNAME, err)
		printhelp(w)
		return 2
	}
	if *showhelp {
		printhelp(w)
		return 0
	}

	if opt.trace > 0 {
		if err := gnssir.TraceOpen(opt.tracefile); err != nil {
			fmt.Fprintf(w, "%s: %v\n", PROGNAME, err)
			return 2
		}
		gnssir.TraceLevel(opt.trace)
		defer gnssir.TraceClose()
	}

	tbl := gnssir.NewStationTable()
	if opt.stafile != "" {
		var err error
		if tbl, err = gnssir.LoadStations(opt.stafile); err != nil {
			fmt.Fprintf(w, "%s: %v\n", PROGNAME, err)
			return 2
		}
	}

	recs, err := gnssir.ScanDir(opt.dir)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", PROGNAME, err)
		return 2
	}
	srs, err := gnssir.GroupRanges(recs)
	if errors.Is(err, gnssir.ErrEmpty) {
		fmt.Fprintf(w, "no observation files in %s\n", opt.dir)
		return 0
	} else if err != nil {
		fmt.Fprintf(w, "%s: %v\n", PROGNAME, err)
		return 2
	}

	stat := 0
	for _, sr := range srs {
		err := prepStation(w, &opt, tbl, sr)
		var derr *gnssir.DomainError
		switch {
		case err == nil:
			continue
		case errors.Is(err, gnssir.ErrNotFound):
			fmt.Fprintf(w, "station %s %d: no position in station table or rinex header, skipped\n\n",
				sr.Station, sr.Year)
		case errors.As(err, &derr):
			fmt.Fprintf(w, "station %s %d: invalid header position: %v\n\n", sr.Station, sr.Year, err)
		default:
			fmt.Fprintf(w, "station %s %d: %v\n\n", sr.Station, sr.Year, err)
		}
		stat = 1
	}
	return stat
}

func main() {
	if err := godotenv.Load(); err != nil {
		gnssir.Trace(4, "no .env file found (using environment variables)\n")
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Getenv))
}
