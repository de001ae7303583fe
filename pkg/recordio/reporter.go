package recordio

// Reporter observes corruption the Reader detects and recovers from. The
// offset is the stream position the reader had reached when the damage was
// found; the error describes what failed to validate.
type Reporter interface {
	Corruption(offset int64, err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(offset int64, err error)

func (f ReporterFunc) Corruption(offset int64, err error) {
	f(offset, err)
}

type nopReporter struct{}

func (nopReporter) Corruption(int64, error) {}
