package config

import "time"

type Config struct {
	General  `mapstructure:"general"`
	Files    `mapstructure:"files"`
	Seating  `mapstructure:"seating"`
	Output   `mapstructure:"output"`
	Server   `mapstructure:"server"`
	Database `mapstructure:"database"`
	Redis    `mapstructure:"redis"`
}

type General struct {
	Debug bool `mapstructure:"debug"`
}

type Files struct {
	Students  string `mapstructure:"students"`
	Timetable string `mapstructure:"timetable"`
	Rooms     string `mapstructure:"rooms"`
	Names     string `mapstructure:"names"`
	Delimiter string `mapstructure:"delimiter"`
	TitleRows int    `mapstructure:"title_rows"` // lines above the header of students and timetable files
}

type Seating struct {
	Buffer int  `mapstructure:"buffer"`
	Sparse bool `mapstructure:"sparse"`
}

type Output struct {
	Dir        string `mapstructure:"dir"`
	ExportFile string `mapstructure:"export_file"`
	UploadDir  string `mapstructure:"upload_dir"`
	Font       string `mapstructure:"font"` // UTF-8 TrueType font for attendance sheets
}

type Server struct {
	Port int `mapstructure:"port"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Redis struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// DelimiterRune returns the first rune of the configured delimiter, a comma by default.
func (f Files) DelimiterRune() rune {
	for _, r := range f.Delimiter {
		return r
	}
	return ','
}
