package entities

// Declaration is one externally fetched dependency found in a build file.
// Version always occurs verbatim inside URL.
type Declaration struct {
	Name     string // Dependency identifier (first FetchContent_Declare argument)
	Version  string // Version token as written in the URL, leading "v" included
	URL      string // Archive URL
	Hash     string // URL_HASH argument, empty when absent
	FilePath string // File where the declaration was found
	Line     int    // Line number of the declaration in the file
}

// ConfigFile is a scanned build file along with what was declared in it.
type ConfigFile struct {
	Path         string
	Content      string
	Declarations []Declaration
}
