/*------------------------------------------------------------------------------
* gnssiropt.go : gnss-ir analysis option functions
*
* notes  : option file format (one option per line)
*              gnssir-e1          =7             # (deg)
*          text after # is a comment. unknown option names are skipped.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/* gnss-ir analysis options (parameters of gnssir_input) */
type GnssirOpt struct {
	Version     int       /* option record version (GNSSIROPT_VER) */
	E1, E2      float64   /* elevation angle mask min/max (deg) */
	H1, H2      float64   /* reflector height window min/max (m) */
	NR1, NR2    float64   /* noise region min/max (m) */
	PeakToNoise float64   /* min peak to noise ratio */
	Ampl        float64   /* min spectral amplitude */
	Freqs       []int     /* frequency codes */
	Azimuths    []float64 /* azimuth regions as min/max pairs (deg) */
	SampleRate  int       /* snr sample rate (s) */
	SnrType     int       /* snr file type (50,66,88,99) */
}

/* option format */
const (
	OPT_INT    byte = iota /* int */
	OPT_FLOAT              /* float64 */
	OPT_INTS               /* []int */
	OPT_FLOATS             /* []float64 */
)

/* option type */
type Opt struct {
	Name      string     /* option name */
	Format    byte       /* option format */
	VarInt    *int       /* pointer to option variable */
	VarFloat  *float64   /* pointer to option variable */
	VarInts   *[]int     /* pointer to option variable */
	VarFloats *[]float64 /* pointer to option variable */
	Comment   string     /* option comment/unit */
}

var snrTypes = []int{50, 66, 88, 99}

/* default gnss-ir options ---------------------------------------------------*/
func DefaultGnssirOpt() GnssirOpt {
	return GnssirOpt{
		Version:     GNSSIROPT_VER,
		E1:          7.0,
		E2:          12.0,
		H1:          17.0,
		H2:          27.0,
		NR1:         17.0,
		NR2:         27.0,
		PeakToNoise: 2.8,
		Ampl:        5.0,
		Freqs:       []int{1, 20, 5, 101, 102, 201, 205, 206, 207, 302, 306},
		Azimuths:    []float64{0, 180, 345, 360},
		SampleRate:  5,
		SnrType:     66,
	}
}

/* deep copy -----------------------------------------------------------------*/
func (o GnssirOpt) Clone() GnssirOpt {
	c := o
	c.Freqs = append([]int(nil), o.Freqs...)
	c.Azimuths = append([]float64(nil), o.Azimuths...)
	return c
}

/* option table bound to o ---------------------------------------------------*/
func (o *GnssirOpt) Opts() []*Opt {
	return []*Opt{
		{"gnssir-ver", OPT_INT, &o.Version, nil, nil, nil, "record version"},
		{"gnssir-e1", OPT_FLOAT, nil, &o.E1, nil, nil, "deg"},
		{"gnssir-e2", OPT_FLOAT, nil, &o.E2, nil, nil, "deg"},
		{"gnssir-h1", OPT_FLOAT, nil, &o.H1, nil, nil, "m"},
		{"gnssir-h2", OPT_FLOAT, nil, &o.H2, nil, nil, "m"},
		{"gnssir-nr1", OPT_FLOAT, nil, &o.NR1, nil, nil, "m"},
		{"gnssir-nr2", OPT_FLOAT, nil, &o.NR2, nil, nil, "m"},
		{"gnssir-peak2noise", OPT_FLOAT, nil, &o.PeakToNoise, nil, nil, ""},
		{"gnssir-ampl", OPT_FLOAT, nil, &o.Ampl, nil, nil, ""},
		{"gnssir-frlist", OPT_INTS, nil, nil, &o.Freqs, nil, "frequency codes"},
		{"gnssir-azlist", OPT_FLOATS, nil, nil, nil, &o.Azimuths, "deg, min/max pairs"},
		{"gnssir-samplerate", OPT_INT, &o.SampleRate, nil, nil, nil, "s"},
		{"gnssir-snr", OPT_INT, &o.SnrType, nil, nil, nil, "50,66,88,99"},
	}
}

/* search option -------------------------------------------------------------*/
func SearchOpt(name string, opts []*Opt) *Opt {
	for _, opt := range opts {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

/* string to option value ------------------------------------------------------
* convert string to option value
* args   : string str       I   option value string
* return : status (nil: ok)
*-----------------------------------------------------------------------------*/
func (opt *Opt) Str2Opt(str string) error {
	switch opt.Format {
	case OPT_INT:
		v, err := strconv.Atoi(str)
		if err != nil {
			return err
		}
		*opt.VarInt = v
	case OPT_FLOAT:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*opt.VarFloat = v
	case OPT_INTS:
		var vs []int
		for _, f := range strings.Fields(strings.ReplaceAll(str, ",", " ")) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*opt.VarInts = vs
	case OPT_FLOATS:
		var vs []float64
		for _, f := range strings.Fields(strings.ReplaceAll(str, ",", " ")) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*opt.VarFloats = vs
	default:
		return fmt.Errorf("unknown option format %d", opt.Format)
	}
	return nil
}

/* option value to string ----------------------------------------------------*/
func (opt *Opt) Opt2Str() string {
	switch opt.Format {
	case OPT_INT:
		return strconv.Itoa(*opt.VarInt)
	case OPT_FLOAT:
		return strconv.FormatFloat(*opt.VarFloat, 'f', -1, 64)
	case OPT_INTS:
		ss := make([]string, len(*opt.VarInts))
		for i, v := range *opt.VarInts {
			ss[i] = strconv.Itoa(v)
		}
		return strings.Join(ss, " ")
	case OPT_FLOATS:
		ss := make([]string, len(*opt.VarFloats))
		for i, v := range *opt.VarFloats {
			ss[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strings.Join(ss, " ")
	}
	return ""
}

/* option to string (keyword=value # comment) --------------------------------*/
func (opt *Opt) Opt2Buf() string {
	p := fmt.Sprintf("%-18s =%s", opt.Name, opt.Opt2Str())
	if opt.Comment != "" {
		if len(p) < 40 {
			p += strings.Repeat(" ", 40-len(p))
		}
		p += fmt.Sprintf(" # (%s)", opt.Comment)
	}
	return p
}

/* discard comment and space characters --------------------------------------*/
func options_chop(buff string) string {
	if idx := strings.Index(buff, "#"); idx >= 0 {
		buff = buff[:idx]
	}
	return strings.TrimSpace(buff)
}

/* read gnss-ir options --------------------------------------------------------
* read options from option file text
* args   : io.Reader r      I   option file text
*          string src       I   source name for errors
*          GnssirOpt base   I   options not present in the text
* return : options, *ParseError on invalid values, *OptError if the
*          resulting options are invalid
*-----------------------------------------------------------------------------*/
func ReadGnssirOpt(r io.Reader, src string, base GnssirOpt) (GnssirOpt, error) {
	opt := base.Clone()
	opts := opt.Opts()

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		buff := options_chop(sc.Text())
		if buff == "" {
			continue
		}
		idx := strings.Index(buff, "=")
		if idx < 0 {
			Trace(2, "invalid option %s (%s:%d)\n", buff, src, n)
			continue
		}
		name := strings.TrimSpace(buff[:idx])
		value := strings.TrimSpace(buff[idx+1:])
		o := SearchOpt(name, opts)
		if o == nil {
			Trace(3, "unknown option %s (%s:%d)\n", name, src, n)
			continue
		}
		if err := o.Str2Opt(value); err != nil {
			return base, &ParseError{Src: src, Line: n, Text: sc.Text(), Msg: "invalid option value"}
		}
	}
	if err := sc.Err(); err != nil {
		return base, errors.Wrapf(err, "read options %s", src)
	}
	if err := opt.Validate(); err != nil {
		return base, err
	}
	return opt, nil
}

/* load gnss-ir options from file ----------------------------------------------
* args   : string file      I   options file
*          GnssirOpt base   I   options not present in the file
* return : options, status (nil: ok)
*-----------------------------------------------------------------------------*/
func LoadGnssirOpt(file string, base GnssirOpt) (GnssirOpt, error) {
	Trace(4, "loadopts: file=%s\n", file)

	fp, err := os.Open(file)
	if err != nil {
		return base, errors.Wrapf(err, "options file open error (%s)", file)
	}
	defer fp.Close()
	return ReadGnssirOpt(fp, file, base)
}

/* write gnss-ir options -----------------------------------------------------*/
func WriteGnssirOpt(w io.Writer, comment string, opt GnssirOpt) error {
	bw := bufio.NewWriter(w)
	if comment != "" {
		fmt.Fprintf(bw, "# %s\n\n", comment)
	}
	for _, o := range opt.Opts() {
		fmt.Fprintln(bw, o.Opt2Buf())
	}
	return bw.Flush()
}

/* save gnss-ir options to file ------------------------------------------------
* args   : string file      I   options file (overwritten)
*          string comment   I   header comment ("": no comment)
*          GnssirOpt opt    I   options
* return : status (nil: ok)
*-----------------------------------------------------------------------------*/
func SaveGnssirOpt(file, comment string, opt GnssirOpt) error {
	Trace(4, "saveopts: file=%s\n", file)

	fp, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "options file open error (%s)", file)
	}
	if err := WriteGnssirOpt(fp, comment, opt); err != nil {
		fp.Close()
		return errors.Wrapf(err, "write options %s", file)
	}
	return fp.Close()
}

/* validate gnss-ir options --------------------------------------------------*/
func (o GnssirOpt) Validate() error {
	switch {
	case o.Version != GNSSIROPT_VER:
		return &OptError{"gnssir-ver", fmt.Sprintf("unsupported version %d", o.Version)}
	case o.E1 < 0 || o.E2 > 90 || o.E1 >= o.E2:
		return &OptError{"gnssir-e1/e2", fmt.Sprintf("invalid elevation mask %g-%g", o.E1, o.E2)}
	case o.H1 < 0 || o.H1 >= o.H2:
		return &OptError{"gnssir-h1/h2", fmt.Sprintf("invalid height window %g-%g", o.H1, o.H2)}
	case o.NR1 < 0 || o.NR1 >= o.NR2:
		return &OptError{"gnssir-nr1/nr2", fmt.Sprintf("invalid noise region %g-%g", o.NR1, o.NR2)}
	case o.PeakToNoise <= 0:
		return &OptError{"gnssir-peak2noise", "must be positive"}
	case o.Ampl < 0:
		return &OptError{"gnssir-ampl", "must not be negative"}
	case len(o.Freqs) == 0:
		return &OptError{"gnssir-frlist", "no frequencies"}
	case len(o.Azimuths) == 0 || len(o.Azimuths)%2 != 0:
		return &OptError{"gnssir-azlist", "azimuths must be min/max pairs"}
	case o.SampleRate <= 0:
		return &OptError{"gnssir-samplerate", "must be positive"}
	}
	for i := 0; i < len(o.Azimuths); i += 2 {
		a1, a2 := o.Azimuths[i], o.Azimuths[i+1]
		if a1 < 0 || a2 > 360 || a1 >= a2 {
			return &OptError{"gnssir-azlist", fmt.Sprintf("invalid azimuth region %g-%g", a1, a2)}
		}
	}
	for _, t := range snrTypes {
		if o.SnrType == t {
			return nil
		}
	}
	return &OptError{"gnssir-snr", fmt.Sprintf("unsupported snr type %d", o.SnrType)}
}
