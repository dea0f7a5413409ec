/*------------------------------------------------------------------------------
* gnssir unit test driver : station table functions
*-----------------------------------------------------------------------------*/
package gnssir_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gnssir "github.com/CSolgaard/GNSS-IR/src"
	"github.com/stretchr/testify/assert"
)

const stationToml = `
[[station]]
id         = "NUK2"
elevation  = [5.0, 15.0]
azlist     = [90.0, 270.0]
snr        = 88

[[station]]
id         = "kely"
name       = "Kangerlussuaq"
latitude   = "66° 59' 14.55\" N"
longitude  = "50° 56' 40.26\" W"
height     = 229.5
rh         = [2.0, 8.0]
noise      = [2.0, 8.0]
frlist     = [1, 101]
samplerate = 30
`

/* gnssir.NewStationTable(), gnssir.StationTable.Lookup() */
func Test_stationtest1(t *testing.T) {
	assert := assert.New(t)
	tbl := gnssir.NewStationTable()

	assert.Equal([]string{"dmht", "nuk2", "thu2", "upvt"}, tbl.IDs())

	sta, ok := tbl.Lookup("DMHT")
	assert.True(ok)
	assert.True(sta.HasPos)
	assert.InDelta(76.76853056388889, sta.Pos.Lat, 1e-12)
	assert.Equal(2.0, sta.Opt.E1)
	assert.Equal([]float64{150, 250}, sta.Opt.Azimuths)
	assert.Equal(15, sta.Opt.SampleRate)

	sta, ok = tbl.Lookup("thu2")
	assert.True(ok)
	assert.False(sta.HasPos)
	assert.Equal(50, sta.Opt.SnrType)

	for _, id := range tbl.IDs() {
		sta, _ := tbl.Lookup(id)
		assert.NoError(sta.Opt.Validate(), id)
	}

	sta, ok = tbl.Lookup("xxxx")
	assert.False(ok)
	assert.Equal("xxxx", sta.ID)
	assert.Equal(gnssir.DefaultGnssirOpt(), sta.Opt)

	/* lookup returns a copy */
	sta, _ = tbl.Lookup("dmht")
	sta.Opt.Azimuths[0] = 0
	sta, _ = tbl.Lookup("dmht")
	assert.Equal(150.0, sta.Opt.Azimuths[0])
}

/* gnssir.StationTable.Set() */
func Test_stationtest2(t *testing.T) {
	assert := assert.New(t)
	tbl := gnssir.NewStationTable()

	assert.NoError(tbl.Set(gnssir.Station{ID: " SCOR", Name: "Scoresbysund", Opt: gnssir.DefaultGnssirOpt()}))
	sta, ok := tbl.Lookup("scor")
	assert.True(ok)
	assert.Equal("Scoresbysund", sta.Name)

	var perr *gnssir.ParseError
	assert.ErrorAs(tbl.Set(gnssir.Station{ID: "sc", Opt: gnssir.DefaultGnssirOpt()}), &perr)

	bad := gnssir.DefaultGnssirOpt()
	bad.SnrType = 1
	var oerr *gnssir.OptError
	assert.ErrorAs(tbl.Set(gnssir.Station{ID: "scor", Opt: bad}), &oerr)
}

/* gnssir.ReadStations() */
func Test_stationtest3(t *testing.T) {
	assert := assert.New(t)

	tbl, err := gnssir.ReadStations(strings.NewReader(stationToml), "test")
	assert.NoError(err)
	assert.Equal([]string{"dmht", "kely", "nuk2", "thu2", "upvt"}, tbl.IDs())

	/* built-in station, changed values only */
	sta, _ := tbl.Lookup("nuk2")
	assert.Equal("Nuuk", sta.Name)
	assert.True(sta.HasPos)
	assert.Equal(5.0, sta.Opt.E1)
	assert.Equal(15.0, sta.Opt.E2)
	assert.Equal(17.0, sta.Opt.H1)
	assert.Equal([]float64{90, 270}, sta.Opt.Azimuths)
	assert.Equal(88, sta.Opt.SnrType)
	assert.Equal(5, sta.Opt.SampleRate)

	/* new station, dms position */
	sta, ok := tbl.Lookup("kely")
	assert.True(ok)
	assert.Equal("Kangerlussuaq", sta.Name)
	assert.True(sta.HasPos)
	assert.InDelta(66.98737500, sta.Pos.Lat, 1e-8)
	assert.InDelta(-50.94451667, sta.Pos.Lon, 1e-8)
	assert.Equal(229.5, sta.Pos.Hgt)
	assert.Equal(2.0, sta.Opt.H1)
	assert.Equal(8.0, sta.Opt.NR2)
	assert.Equal([]int{1, 101}, sta.Opt.Freqs)
	assert.Equal(30, sta.Opt.SampleRate)
}

/* gnssir.ReadStations() errors */
func Test_stationtest4(t *testing.T) {
	assert := assert.New(t)
	var perr *gnssir.ParseError
	var oerr *gnssir.OptError

	for _, text := range []string{
		"[[station]]\nid = \"nuk2\"\nelevation = [5.0]\n",
		"[[station]]\nid = \"nuk2\"\nposition = [64.0, -51.0]\n",
		"[[station]]\nid = \"nuk2\"\nposition = [95.0, -51.0, 10.0]\n",
		"[[station]]\nid = \"nuk2\"\nlatitude = \"north\"\nlongitude = \"west\"\n",
		"[[station]]\nid = \"toolong\"\n",
	} {
		_, err := gnssir.ReadStations(strings.NewReader(text), "test")
		assert.ErrorAs(err, &perr, text)
	}

	_, err := gnssir.ReadStations(strings.NewReader("[[station]]\nid = \"nuk2\"\nelevation = [15.0, 5.0]\n"), "test")
	assert.ErrorAs(err, &oerr)

	_, err = gnssir.ReadStations(strings.NewReader("[[station]\nid = "), "test")
	assert.Error(err)
}

/* gnssir.LoadStations() */
func Test_stationtest5(t *testing.T) {
	assert := assert.New(t)
	file := filepath.Join(t.TempDir(), "stations.toml")
	assert.NoError(os.WriteFile(file, []byte(stationToml), 0644))

	tbl, err := gnssir.LoadStations(file)
	assert.NoError(err)
	_, ok := tbl.Lookup("kely")
	assert.True(ok)

	_, err = gnssir.LoadStations(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

/* gnssir.ResolvePosition(), gnssir.PositionOffset() */
func Test_stationtest6(t *testing.T) {
	assert := assert.New(t)
	tbl := gnssir.NewStationTable()

	dmht, _ := tbl.Lookup("dmht")
	thu2, _ := tbl.Lookup("thu2")
	hdr := gnssir.ObsHeader{
		Marker: "DMHT",
		Pos:    gnssir.CartesianPosition{X: 1387455.1824, Y: -468833.1625, Z: 6186951.6948},
		HasPos: true,
	}

	/* table position wins */
	pos, err := gnssir.ResolvePosition(dmht, hdr)
	assert.NoError(err)
	assert.Equal(dmht.Pos, pos)
	pos, err = gnssir.ResolvePosition(dmht, gnssir.ObsHeader{})
	assert.NoError(err)
	assert.Equal(dmht.Pos, pos)

	/* header position */
	pos, err = gnssir.ResolvePosition(thu2, hdr)
	assert.NoError(err)
	assert.InDelta(76.76853056388889, pos.Lat, 1e-8)
	assert.InDelta(-18.67055783611111, pos.Lon, 1e-8)
	assert.InDelta(43.218, pos.Hgt, 5e-3)

	/* neither */
	_, err = gnssir.ResolvePosition(thu2, gnssir.ObsHeader{Marker: "THU2"})
	assert.ErrorIs(err, gnssir.ErrNotFound)

	/* header position on the rotation axis */
	_, err = gnssir.ResolvePosition(thu2, gnssir.ObsHeader{Pos: gnssir.CartesianPosition{Z: 6356752.0}, HasPos: true})
	var derr *gnssir.DomainError
	assert.ErrorAs(err, &derr)

	d, ok := gnssir.PositionOffset(dmht, hdr)
	assert.True(ok)
	assert.Less(d, 1e-3)
	hdr.Pos.X += 150.0
	d, ok = gnssir.PositionOffset(dmht, hdr)
	assert.True(ok)
	assert.Greater(d, gnssir.MAXBASELINE)

	_, ok = gnssir.PositionOffset(thu2, hdr)
	assert.False(ok)
	_, ok = gnssir.PositionOffset(dmht, gnssir.ObsHeader{})
	assert.False(ok)
}
