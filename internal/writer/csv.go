package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ikenox/ftx-history-collector/internal/api"
)

// DefaultAccountName is used in file names when no sub-account is set.
const DefaultAccountName = "main"

// csvHeader is the stable column set. Names match the exchange's Fill
// attributes exactly.
var csvHeader = []string{
	"fee", "feeCurrency", "feeRate", "future", "id", "liquidity", "market",
	"baseCurrency", "quoteCurrency", "orderId", "tradeId", "price", "side",
	"size", "time", "type",
}

// CSVFactory creates one CSV sink per calendar date under a fixed output
// directory, named <account>_<yyyy-MM-dd>.csv.
type CSVFactory struct {
	dir     string
	account string
}

// NewCSVFactory creates a factory writing into dir. An empty account
// falls back to DefaultAccountName.
func NewCSVFactory(dir, account string) *CSVFactory {
	if account == "" {
		account = DefaultAccountName
	}
	return &CSVFactory{dir: dir, account: account}
}

// Open creates or reopens the file for date. Reopening appends: the
// header goes only into an empty file, so a date revisited after a
// rotation keeps its earlier rows.
func (f *CSVFactory) Open(date time.Time) (Sink, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(f.dir, fmt.Sprintf("%s_%s.csv", f.account, date.Format(time.DateOnly)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	st, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	s := &csvSink{file: file, w: csv.NewWriter(file)}
	if st.Size() == 0 {
		if err := s.w.Write(csvHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("write header to %s: %w", path, err)
		}
	}

	return s, nil
}

type csvSink struct {
	file *os.File
	w    *csv.Writer
}

func (s *csvSink) Write(f api.Fill) error {
	return s.w.Write(record(f))
}

func (s *csvSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// record serializes a fill in csvHeader order. Absent optional fields
// become empty cells.
func record(f api.Fill) []string {
	return []string{
		formatFloat(f.Fee),
		optString(f.FeeCurrency),
		optFloat(f.FeeRate),
		optString(f.Future),
		strconv.FormatUint(f.ID, 10),
		optString(f.Liquidity),
		optString(f.Market),
		optString(f.BaseCurrency),
		optString(f.QuoteCurrency),
		optUint(f.OrderID),
		optUint(f.TradeID),
		formatFloat(f.Price),
		optString(f.Side),
		formatFloat(f.Size),
		f.Time.Format(time.RFC3339Nano),
		optString(f.Type),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func optUint(p *uint64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatUint(*p, 10)
}
