/*------------------------------------------------------------------------------
* gnssir unit test driver : gnss-ir option functions
*-----------------------------------------------------------------------------*/
package gnssir_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	gnssir "github.com/CSolgaard/GNSS-IR/src"
	"github.com/stretchr/testify/assert"
)

/* gnssir.DefaultGnssirOpt(), gnssir.GnssirOpt.Validate() */
func Test_gnssiropttest1(t *testing.T) {
	assert := assert.New(t)

	opt := gnssir.DefaultGnssirOpt()
	assert.NoError(opt.Validate())
	assert.Equal(7.0, opt.E1)
	assert.Equal(12.0, opt.E2)
	assert.Equal(66, opt.SnrType)

	var oerr *gnssir.OptError
	for name, mod := range map[string]func(o *gnssir.GnssirOpt){
		"gnssir-ver":        func(o *gnssir.GnssirOpt) { o.Version = 2 },
		"gnssir-e1/e2":      func(o *gnssir.GnssirOpt) { o.E1 = 12 },
		"gnssir-h1/h2":      func(o *gnssir.GnssirOpt) { o.H1 = -1 },
		"gnssir-nr1/nr2":    func(o *gnssir.GnssirOpt) { o.NR2 = 0 },
		"gnssir-peak2noise": func(o *gnssir.GnssirOpt) { o.PeakToNoise = 0 },
		"gnssir-ampl":       func(o *gnssir.GnssirOpt) { o.Ampl = -1 },
		"gnssir-frlist":     func(o *gnssir.GnssirOpt) { o.Freqs = nil },
		"gnssir-azlist":     func(o *gnssir.GnssirOpt) { o.Azimuths = []float64{0, 180, 345} },
		"gnssir-samplerate": func(o *gnssir.GnssirOpt) { o.SampleRate = 0 },
		"gnssir-snr":        func(o *gnssir.GnssirOpt) { o.SnrType = 77 },
	} {
		o := gnssir.DefaultGnssirOpt()
		mod(&o)
		err := o.Validate()
		if assert.ErrorAs(err, &oerr, name) {
			assert.Equal(name, oerr.Name)
		}
	}

	o := gnssir.DefaultGnssirOpt()
	o.Azimuths = []float64{270, 90}
	assert.ErrorAs(o.Validate(), &oerr)
	o.Azimuths = []float64{0, 361}
	assert.ErrorAs(o.Validate(), &oerr)
}

/* gnssir.GnssirOpt.Clone() */
func Test_gnssiropttest2(t *testing.T) {
	assert := assert.New(t)

	opt := gnssir.DefaultGnssirOpt()
	c := opt.Clone()
	c.Freqs[0] = 999
	c.Azimuths[0] = 90
	assert.Equal(1, opt.Freqs[0])
	assert.Equal(0.0, opt.Azimuths[0])
}

/* gnssir.WriteGnssirOpt(), gnssir.ReadGnssirOpt() */
func Test_gnssiropttest3(t *testing.T) {
	assert := assert.New(t)

	opt := gnssir.DefaultGnssirOpt()
	opt.E1, opt.E2 = 2.5, 12
	opt.Azimuths = []float64{150, 250}
	opt.SampleRate = 15

	var buf bytes.Buffer
	assert.NoError(gnssir.WriteGnssirOpt(&buf, "dmht options", opt))
	text := buf.String()
	assert.True(strings.HasPrefix(text, "# dmht options\n\n"))
	assert.Contains(text, "gnssir-e1          =2.5")
	assert.Contains(text, "gnssir-azlist      =150 250")
	assert.Contains(text, "# (deg)")

	rd, err := gnssir.ReadGnssirOpt(strings.NewReader(text), "test", gnssir.DefaultGnssirOpt())
	assert.NoError(err)
	assert.Equal(opt, rd)

	opts := opt.Opts()
	o := gnssir.SearchOpt("gnssir-frlist", opts)
	if assert.NotNil(o) {
		assert.Equal("1 20 5 101 102 201 205 206 207 302 306", o.Opt2Str())
		assert.NoError(o.Str2Opt("1, 20,5"))
		assert.Equal([]int{1, 20, 5}, opt.Freqs)
	}
	assert.Nil(gnssir.SearchOpt("gnssir-none", opts))
}

/* gnssir.ReadGnssirOpt() partial and invalid input */
func Test_gnssiropttest4(t *testing.T) {
	assert := assert.New(t)
	base := gnssir.DefaultGnssirOpt()

	text := "# comment\n" +
		"gnssir-h1 = 4   # (m)\n" +
		"gnssir-h2 =15\n" +
		"gnssir-unknown = 3\n" +
		"no equal sign\n" +
		"\n"
	opt, err := gnssir.ReadGnssirOpt(strings.NewReader(text), "test", base)
	assert.NoError(err)
	assert.Equal(4.0, opt.H1)
	assert.Equal(15.0, opt.H2)
	assert.Equal(base.E1, opt.E1)
	assert.Equal(base.Freqs, opt.Freqs)

	_, err = gnssir.ReadGnssirOpt(strings.NewReader("gnssir-e1 =seven\n"), "test", base)
	var perr *gnssir.ParseError
	if assert.ErrorAs(err, &perr) {
		assert.Equal("test", perr.Src)
		assert.Equal(1, perr.Line)
	}

	_, err = gnssir.ReadGnssirOpt(strings.NewReader("gnssir-frlist =1 x 5\n"), "test", base)
	assert.ErrorAs(err, &perr)

	_, err = gnssir.ReadGnssirOpt(strings.NewReader("gnssir-e1 =30\n"), "test", base)
	var oerr *gnssir.OptError
	assert.ErrorAs(err, &oerr)
}

/* gnssir.SaveGnssirOpt(), gnssir.LoadGnssirOpt() */
func Test_gnssiropttest5(t *testing.T) {
	assert := assert.New(t)
	file := filepath.Join(t.TempDir(), "nuk2.opt")

	opt := gnssir.DefaultGnssirOpt()
	opt.Freqs = []int{1, 101, 201}
	opt.SnrType = 99
	assert.NoError(gnssir.SaveGnssirOpt(file, "nuk2", opt))

	ld, err := gnssir.LoadGnssirOpt(file, gnssir.DefaultGnssirOpt())
	assert.NoError(err)
	assert.Equal(opt, ld)

	_, err = gnssir.LoadGnssirOpt(filepath.Join(t.TempDir(), "missing.opt"), opt)
	assert.Error(err)
	assert.Error(gnssir.SaveGnssirOpt(filepath.Join(file, "sub.opt"), "", opt))
}
