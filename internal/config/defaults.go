package config

const (
	defaultStateDir     = "~/.local/share/rewatch"
	defaultNotesDir     = "~/notes/watch"
	defaultLogDir       = "~/.local/share/rewatch/logs"
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultSource       = "import"
)

// defaultCSVDateFormats covers the layouts the supported exports use.
var defaultCSVDateFormats = []string{"1/2/06", "2006-01-02", "01/02/2006"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			NotesDir: defaultNotesDir,
			LogDir:   defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Import: Import{
			DefaultSource:  defaultSource,
			CSVDateFormats: append([]string{}, defaultCSVDateFormats...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
