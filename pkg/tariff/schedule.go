package tariff

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tradedesk/htsagent/internal/models"
)

// Column headers the schedule file must carry.
const (
	colHTSNumber   = "HTS Number"
	colDescription = "Description"
	colGeneralRate = "General Rate of Duty"
)

type ScheduleConfig struct {
	CSVPath string
	Logger  *slog.Logger
}

// Schedule resolves classification codes against the tariff file. Rows
// are cached keyed by the file's modification time, so a lookup always
// reflects the latest on-disk schedule while repeat lookups against an
// unchanged file skip the re-read.
type Schedule struct {
	config ScheduleConfig

	mu      sync.Mutex
	modTime time.Time
	rows    []models.TariffRow
	loaded  bool
}

func NewSchedule(config ScheduleConfig) *Schedule {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Schedule{config: config}
}

// Lookup returns every schedule row whose HTS number equals code, in file
// order. A missing schedule file is logged and yields an empty result,
// the same as a code that matches nothing.
func (s *Schedule) Lookup(code string) ([]models.TariffRow, error) {
	rows, err := s.load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.config.Logger.Warn("tariff schedule not found", "path", s.config.CSVPath)
			return nil, nil
		}
		return nil, err
	}

	var matches []models.TariffRow
	for _, row := range rows {
		if row.HTSNumber == code {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

func (s *Schedule) load() ([]models.TariffRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.config.CSVPath)
	if err != nil {
		return nil, err
	}
	if s.loaded && info.ModTime().Equal(s.modTime) {
		return s.rows, nil
	}

	f, err := os.Open(s.config.CSVPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := parseSchedule(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %s: %w", s.config.CSVPath, err)
	}

	s.rows = rows
	s.modTime = info.ModTime()
	s.loaded = true
	return rows, nil
}

func parseSchedule(r io.Reader) ([]models.TariffRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colHTSNumber, colGeneralRate} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("schedule is missing column %q", required)
		}
	}

	var rows []models.TariffRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := models.TariffRow{
			HTSNumber: field(record, cols[colHTSNumber]),
			RateText:  field(record, cols[colGeneralRate]),
		}
		if i, ok := cols[colDescription]; ok {
			row.Description = field(record, i)
		}
		row.Rate = ParseRate(row.RateText)
		rows = append(rows, row)
	}

	return rows, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
