/*------------------------------------------------------------------------------
* rnxfile.go : observation file name functions
*
* notes  : supported names
*          rinex 3 long name : SSSSMRCCC_K_YYYYDDDHHMM_01D_15S_MO.rnx/.crx[.gz]
*                              (any text between the station and the
*                              _YYYYDDD field is accepted)
*          rinex 2 short name: ssssdddf.yyo/.yyd[.gz|.Z]
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/* daily rinex 3 observation file name template (see GenObsPath) */
const RNX3_DAILY_TMPL = "%S00GRL_R_%Y%n0000_01D_15S_MO.crx.gz"

var (
	rnx3Pattern = regexp.MustCompile(`(?i)^([a-z0-9]{4}).*_(\d{4})(\d{3}).*\.(rnx|crx)(\.gz)?$`)
	rnx2Pattern = regexp.MustCompile(`(?i)^([a-z0-9]{4})(\d{3})[0-9a-x]\.(\d{2})([od])(\.gz|\.z)?$`)
)

/* days in year --------------------------------------------------------------*/
func daysInYear(year int) int {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return 366
	}
	return 365
}

/* two digit year to year (80-99: 19xx, 00-79: 20xx) -------------------------*/
func fullYear(yy int) int {
	if yy < 80 {
		return 2000 + yy
	}
	return 1900 + yy
}

/* parse observation file name -------------------------------------------------
* parse station, year and day of year from an observation file name
* args   : string name      I   file name (base name, no directory)
* return : record and status (false: not an observation file name)
*-----------------------------------------------------------------------------*/
func ParseObsFileName(name string) (ObsFileRecord, bool) {
	rec := ObsFileRecord{Name: name}
	if m := rnx3Pattern.FindStringSubmatch(name); m != nil {
		rec.Station = strings.ToLower(m[1])
		rec.Year, _ = strconv.Atoi(m[2])
		rec.Doy, _ = strconv.Atoi(m[3])
		rec.Format = FMT_RNX3
		if strings.EqualFold(m[4], "crx") {
			rec.Format = FMT_CRX3
		}
		rec.Gzip = m[5] != ""
	} else if m := rnx2Pattern.FindStringSubmatch(name); m != nil {
		yy, _ := strconv.Atoi(m[3])
		rec.Station = strings.ToLower(m[1])
		rec.Year = fullYear(yy)
		rec.Doy, _ = strconv.Atoi(m[2])
		rec.Format = FMT_RNX2
		if strings.EqualFold(m[4], "d") {
			rec.Format = FMT_CRX2
		}
		rec.Gzip = strings.EqualFold(m[5], ".gz")
	} else {
		return ObsFileRecord{}, false
	}
	if rec.Doy < MINDOY || rec.Doy > daysInYear(rec.Year) {
		Trace(3, "parseobsname: invalid doy name=%s\n", name)
		return ObsFileRecord{}, false
	}
	return rec, true
}

/* scan observation file names -------------------------------------------------
* args   : []string names   I   file names
* return : records of the matching names in input order
*-----------------------------------------------------------------------------*/
func ScanNames(names []string) []ObsFileRecord {
	var recs []ObsFileRecord
	for _, name := range names {
		if rec, ok := ParseObsFileName(name); ok {
			recs = append(recs, rec)
		} else {
			Trace(5, "scannames: skip %s\n", name)
		}
	}
	return recs
}

/* scan observation directory --------------------------------------------------
* args   : string dir       I   directory path
* return : records of the regular files with observation names, by name
*-----------------------------------------------------------------------------*/
func ScanDir(dir string) ([]ObsFileRecord, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scan obs directory %s", dir)
	}
	names := make([]string, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		names = append(names, ent.Name())
	}
	sort.Strings(names)
	recs := ScanNames(names)
	Trace(3, "scandir: dir=%s files=%d obs=%d\n", dir, len(names), len(recs))
	return recs, nil
}

func sortByDoy(recs []ObsFileRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Doy != recs[j].Doy {
			return recs[i].Doy < recs[j].Doy
		}
		return recs[i].Name < recs[j].Name
	})
}

/* reduce records to doy range -------------------------------------------------
* args   : []ObsFileRecord recs I records of one station and year
* return : station range, station and year from the first record,
*          start/end doy as min/max over all records
*          ErrEmpty if recs is empty
*-----------------------------------------------------------------------------*/
func ReduceToRange(recs []ObsFileRecord) (StationRange, error) {
	if len(recs) == 0 {
		return StationRange{}, ErrEmpty
	}
	sr := StationRange{
		Station: recs[0].Station,
		Year:    recs[0].Year,
		Doys:    DoyRange{Start: recs[0].Doy, End: recs[0].Doy},
		Files:   append([]ObsFileRecord(nil), recs...),
	}
	for _, rec := range recs[1:] {
		if rec.Station != sr.Station || rec.Year != sr.Year {
			Trace(2, "reducerange: mixed files %s %d / %s %d\n", sr.Station, sr.Year, rec.Station, rec.Year)
		}
		if rec.Doy < sr.Doys.Start {
			sr.Doys.Start = rec.Doy
		}
		if rec.Doy > sr.Doys.End {
			sr.Doys.End = rec.Doy
		}
	}
	sortByDoy(sr.Files)
	return sr, nil
}

/* group records by station and year -------------------------------------------
* args   : []ObsFileRecord recs I records
* return : one range per station and year ordered by station, year
*          ErrEmpty if recs is empty
*-----------------------------------------------------------------------------*/
func GroupRanges(recs []ObsFileRecord) ([]StationRange, error) {
	if len(recs) == 0 {
		return nil, ErrEmpty
	}
	type key struct {
		sta  string
		year int
	}
	groups := map[key][]ObsFileRecord{}
	for _, rec := range recs {
		k := key{rec.Station, rec.Year}
		groups[k] = append(groups[k], rec)
	}
	srs := make([]StationRange, 0, len(groups))
	for _, g := range groups {
		sr, err := ReduceToRange(g)
		if err != nil {
			return nil, err
		}
		srs = append(srs, sr)
	}
	sort.Slice(srs, func(i, j int) bool {
		if srs[i].Station != srs[j].Station {
			return srs[i].Station < srs[j].Station
		}
		return srs[i].Year < srs[j].Year
	})
	return srs, nil
}

func (r DoyRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

func (r DoyRange) Contains(doy int) bool {
	return r.Start <= doy && doy <= r.End
}

/* days of the range in order ------------------------------------------------*/
func (r DoyRange) Days() []int {
	if r.End < r.Start {
		return nil
	}
	days := make([]int, 0, r.Len())
	for d := r.Start; d <= r.End; d++ {
		days = append(days, d)
	}
	return days
}

func (r DoyRange) String() string {
	return fmt.Sprintf("%03d-%03d", r.Start, r.End)
}

/* doys in the range without an observation file -----------------------------*/
func (sr StationRange) MissingDays() []int {
	have := make(map[int]bool, len(sr.Files))
	for _, f := range sr.Files {
		have[f.Doy] = true
	}
	var miss []int
	for _, d := range sr.Doys.Days() {
		if !have[d] {
			miss = append(miss, d)
		}
	}
	return miss
}

/* generate observation file path ----------------------------------------------
* generate path by replacing keywords
* args   : string tmpl      I   path template with keywords
*                                 %s -> station id (lower case)
*                                 %S -> station id (upper case)
*                                 %Y -> yyyy : year (4 digits)
*                                 %y -> yy   : year (2 digits)
*                                 %n -> ddd  : day of year (3 digits)
*          string sta       I   station id
*          int    year,doy  I   year, day of year
* return : generated path
*-----------------------------------------------------------------------------*/
func GenObsPath(tmpl, sta string, year, doy int) string {
	rep := strings.NewReplacer(
		"%s", strings.ToLower(sta),
		"%S", strings.ToUpper(sta),
		"%Y", fmt.Sprintf("%04d", year),
		"%y", fmt.Sprintf("%02d", year%100),
		"%n", fmt.Sprintf("%03d", doy),
	)
	return rep.Replace(tmpl)
}

/* generate observation file paths for a doy range ---------------------------*/
func GenObsPaths(tmpl, sta string, year int, r DoyRange) []string {
	paths := make([]string, 0, r.Len())
	for _, doy := range r.Days() {
		paths = append(paths, GenObsPath(tmpl, sta, year, doy))
	}
	return paths
}

/* decompressed observation file name ------------------------------------------
* name of the file produced by gunzip and crx2rnx
* args   : string name      I   file name
* return : *.crx[.gz], *.rnx.gz -> *.rnx, *.yyd[.gz|.Z] -> *.yyo, else name
*-----------------------------------------------------------------------------*/
func DecompressedName(name string) string {
	base := name
	lower := strings.ToLower(base)
	for _, ext := range []string{".gz", ".z"} {
		if strings.HasSuffix(lower, ext) {
			base, lower = base[:len(base)-len(ext)], lower[:len(lower)-len(ext)]
			break
		}
	}
	switch {
	case strings.HasSuffix(lower, ".crx"):
		return base[:len(base)-4] + ".rnx"
	case strings.HasSuffix(lower, ".rnx"):
		return base
	case rnx2Pattern.MatchString(base) && strings.HasSuffix(lower, "d"):
		return base[:len(base)-1] + "o"
	case rnx2Pattern.MatchString(base):
		return base
	}
	return name
}
