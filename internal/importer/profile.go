package importer

// Profile describes the column layout of one gauge export format. A profile
// either has a single timestamp column or separate date and time columns.
type Profile struct {
	Name        string
	DateTimeCol string
	DateCol     string
	TimeCol     string
	VolumeCol   string
	Layouts     []string
}

func (p Profile) requiredCols() []string {
	if p.DateTimeCol != "" {
		return []string{p.DateTimeCol, p.VolumeCol}
	}

	return []string{p.DateCol, p.TimeCol, p.VolumeCol}
}

// profiles are tried in order; the more specific ones come first.
var profiles = []Profile{
	{
		Name:      "medicao",
		DateCol:   "Data",
		TimeCol:   "Hora",
		VolumeCol: "Volume (L)",
		Layouts:   []string{"02/01/2006 15:04:05", "02/01/2006 15:04"},
	},
	{
		Name:        "atg",
		DateTimeCol: "Date Time",
		VolumeCol:   "Volume",
		Layouts:     []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05"},
	},
}
