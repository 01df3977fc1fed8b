package fastqgen

import (
	"bufio"
	"os"

	gzip "github.com/klauspost/pgzip"
	"github.com/shenwei356/bio/seqio/fastx"
)

// RecordWriter writes records in an async fashion
// Call Close() when you're done!
type RecordWriter struct {
	file    *os.File
	gz      *gzip.Writer
	buf     *bufio.Writer
	cache   []*fastx.Record
	records chan []*fastx.Record
	errors  chan error
	closed  bool
}

// Write queues a record, handing the batch to the background writer once
// the cache is full.
func (w *RecordWriter) Write(record *fastx.Record) {
	w.cache = append(w.cache, record)
	if cap(w.cache) == len(w.cache) {
		w.Flush()
	}
}

// Close flushes the cache and closes the gzip stream and the file. It
// returns the first write, flush or close error.
func (w *RecordWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.Flush()

	close(w.records)
	return <-w.errors
}

// Flush hands the cached records to the background writer.
func (w *RecordWriter) Flush() {
	if len(w.cache) == 0 {
		return
	}
	w.records <- w.cache
	// the background writer still owns the old slice
	w.cache = make([]*fastx.Record, 0, cap(w.cache))
}

// drain writes every batch until the channel closes. After the first error
// the remaining batches are discarded so Flush never blocks.
func (w *RecordWriter) drain() error {
	var err error
	for records := range w.records {
		for _, record := range records {
			if err != nil {
				break
			}
			_, err = w.buf.Write(record.Format(0))
		}
	}
	if ferr := w.buf.Flush(); err == nil {
		err = ferr
	}
	if gerr := w.gz.Close(); err == nil {
		err = gerr
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewRecordWriter creates a nice new gzip writer
// cachesize: How many records to buffer at a time
func NewRecordWriter(filename string, cachesize int) (*RecordWriter, error) {

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	if cachesize < 1 {
		cachesize = 1
	}

	gz := gzip.NewWriter(file)
	w := RecordWriter{
		file:    file,
		gz:      gz,
		buf:     bufio.NewWriterSize(gz, 1<<16),
		cache:   make([]*fastx.Record, 0, cachesize),
		records: make(chan []*fastx.Record), // unbuffered
		errors:  make(chan error, 1),
	}

	go func(w *RecordWriter) {
		w.errors <- w.drain()
		close(w.errors)
	}(&w)
	return &w, nil
}
