package ingest

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	apperrors "bicingwrapped/internal/errors"
	"bicingwrapped/pkg/contracts/domain"
)

// maxHeaderScanLines bounds the heuristic header search.
const maxHeaderScanLines = 50

// serviceToken is the normalized substring a service cell must contain for
// the row to be kept. Exports can mix Bicing trips with other Smou services.
const serviceToken = "bicing"

// ServiceName is the canonical service tag stamped on every parsed trip.
const ServiceName = "Bicing"

// headerRule is one pair of signals whose co-occurrence in a normalized
// line identifies the header row. Rules are evaluated top to bottom and the
// first match wins; supporting a new export format means appending a rule,
// not editing the existing ones.
type headerRule struct {
	first  string
	second string
}

var headerRules = []headerRule{
	{first: "matricula", second: "inici"},
	{first: "liquidacio", second: "inici"},
	{first: "matricula", second: "import"},
}

// Column pattern sets, matched by substring against normalized header cells.
// The duration column is named "Unitats" in current Smou exports.
var (
	startPatterns      = []string{"inici", "start"}
	endPatterns        = []string{"fi", "end"}
	bikePatterns       = []string{"matricula", "bike"}
	durationPatterns   = []string{"unitats", "durada", "tiempo", "time"}
	costPatterns       = []string{"import", "cost"}
	servicePatterns    = []string{"servei", "service"}
	settlementPatterns = []string{"liquidacio", "id"}
)

// columnIndexes holds the resolved position of every semantic field in the
// header, -1 when the column is absent.
type columnIndexes struct {
	start      int
	end        int
	bike       int
	duration   int
	cost       int
	service    int
	settlement int
}

// Parser converts one raw export text blob into canonical trip records.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse extracts trip records from raw delimited text. The only fatal
// condition is a missing header row; malformed or non-Bicing rows are
// skipped silently. Empty input yields an empty batch.
func (p *Parser) Parse(rawText string) ([]domain.TripRecord, error) {
	if rawText == "" {
		return []domain.TripRecord{}, nil
	}

	lines := splitLines(rawText)

	headerIdx := -1
	var delimiter rune
	for i := 0; i < len(lines) && i < maxHeaderScanLines; i++ {
		lineNorm := normalizeText(lines[i])
		if !matchesHeaderRules(lineNorm) {
			continue
		}
		headerIdx = i
		delimiter = inferDelimiter(lines[i])
		break
	}

	if headerIdx == -1 {
		return nil, apperrors.ErrHeaderNotFound.WithMessage(
			"no header row found in the first %d lines", maxHeaderScanLines)
	}

	header := splitColumns(lines[headerIdx], delimiter)
	for i, cell := range header {
		header[i] = normalizeText(cell)
	}

	cols := columnIndexes{
		start:      findColumn(header, startPatterns),
		end:        findColumn(header, endPatterns),
		bike:       findColumn(header, bikePatterns),
		duration:   findColumn(header, durationPatterns),
		cost:       findColumn(header, costPatterns),
		service:    findColumn(header, servicePatterns),
		settlement: findColumn(header, settlementPatterns),
	}

	p.logger.Debug("header located",
		slog.Int("line", headerIdx),
		slog.String("delimiter", string(delimiter)),
		slog.Int("columns", len(header)))

	trips := make([]domain.TripRecord, 0, len(lines)-headerIdx-1)
	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		cells := splitColumns(lines[i], delimiter)

		startCell := cellAt(cells, cols.start)
		if startCell == "" {
			continue
		}

		// Exports filtered to "all services" include taxi and motorbike
		// rows; only Bicing trips survive.
		if cols.service >= 0 {
			s := normalizeText(cellAt(cells, cols.service))
			if s != "" && !strings.Contains(s, serviceToken) {
				continue
			}
		}

		startDate, err := parseExportDate(startCell)
		if err != nil {
			continue
		}

		endDate := startDate
		if cols.end >= 0 {
			if parsed, err := parseExportDate(cellAt(cells, cols.end)); err == nil {
				endDate = parsed
			}
		}

		duration := 0
		if cols.duration >= 0 {
			duration = parseDurationMinutes(cellAt(cells, cols.duration))
		}

		cost := 0.0
		if cols.cost >= 0 {
			cost = parseCost(cellAt(cells, cols.cost))
		}

		id := domain.PlaceholderIDPrefix + strconv.Itoa(i)
		if settlement := cellAt(cells, cols.settlement); settlement != "" {
			id = settlement
		}

		bikeID := "?"
		if cols.bike >= 0 {
			bikeID = cellAt(cells, cols.bike)
		}

		trips = append(trips, domain.TripRecord{
			ID:              id,
			StartDate:       startDate,
			EndDate:         endDate,
			BikeID:          bikeID,
			DurationMinutes: duration,
			Cost:            cost,
			Service:         ServiceName,
		})
	}

	p.logger.Debug("export parsed",
		slog.Int("lines", len(lines)),
		slog.Int("trips", len(trips)))

	return trips, nil
}

// splitLines normalizes CRLF/CR line endings and splits.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// matchesHeaderRules reports whether a normalized line satisfies any of the
// ordered header signal-pair rules.
func matchesHeaderRules(lineNorm string) bool {
	for _, rule := range headerRules {
		if strings.Contains(lineNorm, rule.first) && strings.Contains(lineNorm, rule.second) {
			return true
		}
	}
	return false
}

// inferDelimiter counts candidate delimiters in the raw header line and
// picks the strict majority. Any tie falls back to comma.
func inferDelimiter(headerLine string) rune {
	tabs := strings.Count(headerLine, "\t")
	semis := strings.Count(headerLine, ";")
	commas := strings.Count(headerLine, ",")

	switch {
	case tabs > commas && tabs > semis:
		return '\t'
	case semis > commas && semis > tabs:
		return ';'
	default:
		return ','
	}
}

// splitColumns splits a line by the delimiter, trimming whitespace and one
// surrounding pair of quotes per cell.
func splitColumns(line string, delimiter rune) []string {
	cells := strings.Split(line, string(delimiter))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if len(c) >= 2 && strings.HasPrefix(c, `"`) && strings.HasSuffix(c, `"`) {
			c = c[1 : len(c)-1]
		} else {
			c = strings.TrimPrefix(c, `"`)
			c = strings.TrimSuffix(c, `"`)
		}
		cells[i] = c
	}
	return cells
}

// findColumn resolves a pattern set against normalized header cells,
// returning the first matching index or -1 when the column is absent.
func findColumn(header []string, patterns []string) int {
	for i, cell := range header {
		for _, p := range patterns {
			if strings.Contains(cell, p) {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the trimmed cell at idx, or "" when the index is absent or
// the row is short.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// parseExportDate parses "DD/MM/YYYY" with an optional "HH:MM" or
// "HH:MM:SS" time part. A missing time means midnight; unparseable time
// components degrade to zero. Dates keep local calendar semantics, no
// timezone conversion.
func parseExportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	datePart, timePart, _ := strings.Cut(s, " ")

	fields := strings.Split(datePart, "/")
	if len(fields) != 3 {
		return time.Time{}, &time.ParseError{Layout: "DD/MM/YYYY", Value: s}
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, err
	}
	month, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, err
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, err
	}

	var hour, minute, second int
	if timePart != "" {
		parts := strings.Split(timePart, ":")
		if len(parts) > 0 {
			hour, _ = strconv.Atoi(parts[0])
		}
		if len(parts) > 1 {
			minute, _ = strconv.Atoi(parts[1])
		}
		if len(parts) > 2 {
			second, _ = strconv.Atoi(parts[2])
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
}

// parseDurationMinutes extracts the first run of digits ("13 min" -> 13).
func parseDurationMinutes(s string) int {
	start := -1
	end := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	if start == -1 {
		return 0
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0
	}
	return n
}

// parseCost parses a European-style monetary string. Currency and space
// symbols are stripped; when a comma is present, dots are thousands
// separators and the comma is the decimal point, otherwise the string is
// taken as already dot-decimal.
func parseCost(s string) float64 {
	clean := strings.Map(func(r rune) rune {
		if r == '€' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
