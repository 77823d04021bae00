package enum

type EmailFormat string

const (
	EmailFormatEml EmailFormat = "eml"
	EmailFormatMsg EmailFormat = "msg"
)

func (f EmailFormat) String() string {
	return string(f)
}

// Extension returns the file extension for the format, including the leading dot.
func (f EmailFormat) Extension() string {
	return "." + string(f)
}

type OutputMode string

const (
	OutputModeStream   OutputMode = "stream"
	OutputModeDownload OutputMode = "download"
)

func (m OutputMode) String() string {
	return string(m)
}

type StorageBackend string

const (
	StorageLocal StorageBackend = "local"
	StorageS3    StorageBackend = "s3"
	StorageR2    StorageBackend = "r2"
	StorageRedis StorageBackend = "redis"
)

func (b StorageBackend) String() string {
	return string(b)
}
