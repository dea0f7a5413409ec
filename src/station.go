/*------------------------------------------------------------------------------
* station.go : station table functions
*
* notes  : station file format (toml), all keys but id optional
*
*          [[station]]
*          id         = "dmht"
*          name       = "Danmarkshavn"
*          position   = [76.76853056388889, -18.67055783611111, 43.218]
*          # or latitude/longitude as deg-min-sec strings plus height
*          # latitude  = "76° 46' 6.71\""
*          # longitude = "18° 40' 14.01\" W"
*          # height    = 43.218
*          elevation  = [2.0, 12.0]   # e1, e2 (deg)
*          rh         = [4.0, 15.0]   # h1, h2 (m)
*          noise      = [4.0, 15.0]   # nr1, nr2 (m)
*          peak2noise = 2.7
*          ampl       = 6.0
*          frlist     = [1, 20, 5, 101, 102, 201, 205, 206, 207, 302, 306]
*          azlist     = [150.0, 250.0]
*          samplerate = 15
*          snr        = 66
*
*          zero or empty values keep the built-in or default value.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/midbel/toml"
	"github.com/pkg/errors"
)

/* gnss-ir station */
type Station struct {
	ID     string           /* station id (lower case) */
	Name   string           /* station name */
	Pos    GeodeticPosition /* station position */
	HasPos bool             /* position configured */
	Opt    GnssirOpt        /* gnss-ir options */
}

/* station table keyed by lower case station id */
type StationTable struct {
	stas map[string]Station
}

type stationConf struct {
	ID          string    `toml:"id"`
	Name        string    `toml:"name"`
	Position    []float64 `toml:"position"`
	Latitude    string    `toml:"latitude"`
	Longitude   string    `toml:"longitude"`
	Height      float64   `toml:"height"`
	Elevation   []float64 `toml:"elevation"`
	RH          []float64 `toml:"rh"`
	Noise       []float64 `toml:"noise"`
	PeakToNoise float64   `toml:"peak2noise"`
	Ampl        float64   `toml:"ampl"`
	Freqs       []int     `toml:"frlist"`
	Azimuths    []float64 `toml:"azlist"`
	SampleRate  int       `toml:"samplerate"`
	SnrType     int       `toml:"snr"`
}

type stationFile struct {
	Stations []stationConf `toml:"station"`
}

/* built-in stations ---------------------------------------------------------*/
func builtinStations() []Station {
	dmht := DefaultGnssirOpt()
	dmht.E1, dmht.E2, dmht.H1, dmht.H2, dmht.NR1, dmht.NR2 = 2, 12, 4, 15, 4, 15
	dmht.PeakToNoise, dmht.Ampl = 2.7, 6.0
	dmht.Azimuths = []float64{150, 250}
	dmht.SampleRate = 15

	nuk2 := DefaultGnssirOpt()

	thu2 := DefaultGnssirOpt()
	thu2.E1, thu2.E2, thu2.H1, thu2.H2, thu2.NR1, thu2.NR2 = 4, 10, 14, 30, 14, 30
	thu2.PeakToNoise, thu2.Ampl = 2.7, 6.0
	thu2.Azimuths = []float64{180, 250}
	thu2.SnrType = 50

	upvt := DefaultGnssirOpt()
	upvt.E1, upvt.E2, upvt.H1, upvt.H2, upvt.NR1, upvt.NR2 = 5, 12, 3, 13, 3, 13
	upvt.PeakToNoise, upvt.Ampl = 2.7, 6.0
	upvt.Azimuths = []float64{180, 360}
	upvt.SampleRate = 15

	return []Station{
		{ID: "dmht", Name: "Danmarkshavn", HasPos: true, Opt: dmht,
			Pos: GeodeticPosition{Lat: 76.76853056388889, Lon: -18.67055783611111, Hgt: 43.218}},
		{ID: "nuk2", Name: "Nuuk", HasPos: true, Opt: nuk2,
			Pos: GeodeticPosition{Lat: 64.17116546666666, Lon: -51.720297333333335, Hgt: 50.868}},
		{ID: "thu2", Name: "Thule", Opt: thu2},
		{ID: "upvt", Name: "Upernavik", Opt: upvt},
	}
}

/* new station table with the built-in stations ------------------------------*/
func NewStationTable() *StationTable {
	tbl := &StationTable{stas: map[string]Station{}}
	for _, sta := range builtinStations() {
		tbl.stas[sta.ID] = sta
	}
	return tbl
}

/* search station --------------------------------------------------------------
* args   : string id        I   station id (case-insensitive)
* return : station and status (false: unknown station, default options)
*-----------------------------------------------------------------------------*/
func (tbl *StationTable) Lookup(id string) (Station, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	sta, ok := tbl.stas[id]
	if !ok {
		return Station{ID: id, Opt: DefaultGnssirOpt()}, false
	}
	sta.Opt = sta.Opt.Clone()
	return sta, true
}

/* station ids in order ------------------------------------------------------*/
func (tbl *StationTable) IDs() []string {
	ids := make([]string, 0, len(tbl.stas))
	for id := range tbl.stas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

/* add or replace station ----------------------------------------------------*/
func (tbl *StationTable) Set(sta Station) error {
	sta.ID = strings.ToLower(strings.TrimSpace(sta.ID))
	if len(sta.ID) != 4 {
		return &ParseError{Src: "station", Text: sta.ID, Msg: "station id must have 4 characters"}
	}
	if err := sta.Opt.Validate(); err != nil {
		return errors.Wrapf(err, "station %s", sta.ID)
	}
	tbl.stas[sta.ID] = sta
	return nil
}

/* apply pair option ---------------------------------------------------------*/
func setPair(src, key string, v []float64, p1, p2 *float64) error {
	switch len(v) {
	case 0:
		return nil
	case 2:
		*p1, *p2 = v[0], v[1]
		return nil
	}
	return &ParseError{Src: src, Text: key, Msg: "expected two values"}
}

/* station configuration to station ------------------------------------------*/
func (c stationConf) apply(src string, sta Station) (Station, error) {
	if c.Name != "" {
		sta.Name = c.Name
	}
	switch {
	case len(c.Position) == 3:
		sta.Pos = GeodeticPosition{Lat: c.Position[0], Lon: c.Position[1], Hgt: c.Position[2]}
		sta.HasPos = true
	case len(c.Position) != 0:
		return sta, &ParseError{Src: src, Text: c.ID, Msg: "position must be [lat, lon, height]"}
	case c.Latitude != "" || c.Longitude != "":
		lat, err := ParseDms(c.Latitude)
		if err != nil {
			return sta, err
		}
		lon, err := ParseDms(c.Longitude)
		if err != nil {
			return sta, err
		}
		sta.Pos = GeodeticPosition{Lat: lat, Lon: lon, Hgt: c.Height}
		sta.HasPos = true
	}
	if sta.HasPos && (sta.Pos.Lat < -90 || sta.Pos.Lat > 90 || sta.Pos.Lon < -180 || sta.Pos.Lon > 360) {
		return sta, &ParseError{Src: src, Text: c.ID, Msg: "position out of range"}
	}

	opt := &sta.Opt
	if err := setPair(src, "elevation", c.Elevation, &opt.E1, &opt.E2); err != nil {
		return sta, err
	}
	if err := setPair(src, "rh", c.RH, &opt.H1, &opt.H2); err != nil {
		return sta, err
	}
	if err := setPair(src, "noise", c.Noise, &opt.NR1, &opt.NR2); err != nil {
		return sta, err
	}
	if c.PeakToNoise != 0 {
		opt.PeakToNoise = c.PeakToNoise
	}
	if c.Ampl != 0 {
		opt.Ampl = c.Ampl
	}
	if len(c.Freqs) > 0 {
		opt.Freqs = append([]int(nil), c.Freqs...)
	}
	if len(c.Azimuths) > 0 {
		opt.Azimuths = append([]float64(nil), c.Azimuths...)
	}
	if c.SampleRate != 0 {
		opt.SampleRate = c.SampleRate
	}
	if c.SnrType != 0 {
		opt.SnrType = c.SnrType
	}
	return sta, nil
}

/* read station table ----------------------------------------------------------
* read stations from toml text over the built-in stations
* args   : io.Reader r      I   station file text (toml)
*          string src       I   source name for errors
* return : station table, status (nil: ok)
*-----------------------------------------------------------------------------*/
func ReadStations(r io.Reader, src string) (*StationTable, error) {
	var sf stationFile
	if err := toml.Decode(r, &sf); err != nil {
		return nil, errors.Wrapf(err, "decode station file %s", src)
	}
	tbl := NewStationTable()
	for _, c := range sf.Stations {
		base, ok := tbl.Lookup(c.ID)
		sta, err := c.apply(src, base)
		if err != nil {
			return nil, err
		}
		if err := tbl.Set(sta); err != nil {
			return nil, err
		}
		Trace(4, "readstas: id=%s builtin=%v pos=%v\n", sta.ID, ok, sta.HasPos)
	}
	return tbl, nil
}

/* load station table from file ----------------------------------------------*/
func LoadStations(file string) (*StationTable, error) {
	Trace(4, "loadstas: file=%s\n", file)

	fp, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "station file open error (%s)", file)
	}
	defer fp.Close()
	return ReadStations(fp, file)
}

/* resolve station position ----------------------------------------------------
* station position from the table, else from the rinex header
* args   : Station sta      I   station
*          ObsHeader hdr    I   rinex observation header
* return : geodetic position
*          ErrNotFound if neither table nor header hold a position
*          *DomainError if the header position has no defined longitude
*-----------------------------------------------------------------------------*/
func ResolvePosition(sta Station, hdr ObsHeader) (GeodeticPosition, error) {
	if sta.HasPos {
		return sta.Pos, nil
	}
	if !hdr.HasPos {
		return GeodeticPosition{}, errors.Wrapf(ErrNotFound, "position of station %s", sta.ID)
	}
	return Ecef2Geodetic(hdr.Pos)
}

/* distance of header position to table position (m) -------------------------
* return : distance and status (false: table or header without position)
*-----------------------------------------------------------------------------*/
func PositionOffset(sta Station, hdr ObsHeader) (float64, bool) {
	if !sta.HasPos || !hdr.HasPos {
		return 0, false
	}
	return Baseline(Geodetic2Ecef(sta.Pos), hdr.Pos), true
}
