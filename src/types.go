package gnssir

// basic data types of the gnss-ir preparation library

const (
	VER_GNSSIR  = "0.1.0" /* library version */
	PATCH_LEVEL = "001"   /* patch level */
	FILEPATHSEP = "/"     /* file path separator */
)

const (
	PI       float64 = 3.1415926535897932    /* pi */
	D2R      float64 = (PI / 180.0)          /* deg to rad */
	R2D      float64 = (180.0 / PI)          /* rad to deg */
	RE_WGS84 float64 = 6378137.0             /* earth semimajor axis (WGS84) (m) */
	FE_WGS84 float64 = (1.0 / 298.257223563) /* earth flattening (WGS84) */
)

const (
	MAXITER_GEOD  = 6     /* max iterations of ecef to geodetic conversion */
	TOL_GEOD      = 1e-10 /* latitude convergence tolerance (rad) */
	MAXBASELINE   = 100.0 /* max header/table position difference (m) */
	GNSSIROPT_VER = 1     /* gnss-ir option record version */
	MINDOY        = 1     /* min day of year */
	MAXDOY        = 366   /* max day of year */
	RNXLABEL      = 60    /* column of rinex header labels */
)

/* cartesian ecef position (m) */
type CartesianPosition struct {
	X, Y, Z float64
}

/* geodetic position: latitude/longitude (deg), ellipsoidal height (m) */
type GeodeticPosition struct {
	Lat, Lon, Hgt float64
}

/* observation file format */
type RnxFormat int

const (
	FMT_RNX3 RnxFormat = iota /* rinex 3 long name (.rnx) */
	FMT_CRX3                  /* hatanaka compressed rinex 3 (.crx) */
	FMT_RNX2                  /* rinex 2 short name (.yyo) */
	FMT_CRX2                  /* hatanaka compressed rinex 2 (.yyd) */
)

func (f RnxFormat) String() string {
	switch f {
	case FMT_RNX3:
		return "rnx"
	case FMT_CRX3:
		return "crx"
	case FMT_RNX2:
		return "rnx2"
	case FMT_CRX2:
		return "crx2"
	}
	return "unknown"
}

/* observation file metadata derived from a file name */
type ObsFileRecord struct {
	Station string    /* station id (4 chars, lower case) */
	Year    int       /* year */
	Doy     int       /* day of year (1-366) */
	Name    string    /* file name */
	Format  RnxFormat /* file format */
	Gzip    bool      /* gzip compressed */
}

/* inclusive day of year range */
type DoyRange struct {
	Start, End int
}

/* doy range of one station and year */
type StationRange struct {
	Station string
	Year    int
	Doys    DoyRange
	Files   []ObsFileRecord /* files in the range, sorted by doy */
}

/* rinex observation header fields used here */
type ObsHeader struct {
	Version float64           /* rinex version */
	Type    string            /* file type ("O") */
	Marker  string            /* marker name */
	Pos     CartesianPosition /* approx position xyz */
	HasPos  bool              /* approx position present */
}
