package scpath

const (
	// SourceDir is the name of the repository metadata directory
	SourceDir = ".git"

	// ObjectsDir is the name of the objects directory
	ObjectsDir = "objects"

	// RefsDir is the name of the refs directory
	RefsDir = "refs"

	// HeadsDir is the name of the heads directory (branches)
	HeadsDir = "heads"

	// TagsDir is the name of the tags directory
	TagsDir = "tags"

	// IndexFile is the name of the index file
	IndexFile = "index"

	// ConfigFile is the name of the config file
	ConfigFile = "config"

	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"
)
