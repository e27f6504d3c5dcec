package checker

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The authoring format is one record per checker, records separated by
// blank lines:
//
//	Code snippet id: Methods.ScheduleService.IsAvailable
//	Metric name: CyclomaticComplexity
//	Value threshold: 1, 4
//	Hint: Extract the nested conditions into separate methods
//
// or, for lexical checkers:
//
//	Code snippet id: ALL_CODE
//	Banned words: info, set, list
//
//	Code snippet id: ALL_CODE
//	Required words: Certificates, HasCertificates
//
// Lines starting with # are comments. The Hint line is optional.

// LoadCheckerFile reads a checker collection from disk
func LoadCheckerFile(path string) ([]CheckerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checker file: %w", err)
	}
	configs, err := ParseCheckerRecords(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing checker file %s: %w", path, err)
	}
	return configs, nil
}

// ParseCheckerRecords parses the plaintext authoring format
func ParseCheckerRecords(text string) ([]CheckerConfig, error) {
	var configs []CheckerConfig
	var current *CheckerConfig
	thresholdSeen := false
	lineNo := 0

	flush := func() error {
		if current == nil {
			return nil
		}
		if current.Kind == "" {
			return fmt.Errorf("record for snippet %q has no metric name or word list", current.SnippetID)
		}
		if current.Kind == KindMetric && current.MetricName == "" {
			return fmt.Errorf("metric record for snippet %q has no metric name", current.SnippetID)
		}
		// The zero range [0,0] would validate, so the threshold line is
		// tracked explicitly instead of relying on the zero value.
		if current.Kind == KindMetric && !thresholdSeen {
			return fmt.Errorf("metric record for snippet %q has no value threshold", current.SnippetID)
		}
		configs = append(configs, *current)
		current = nil
		thresholdSeen = false
		return nil
	}

	setKind := func(kind CheckerKind) error {
		if current.Kind != "" && current.Kind != kind {
			return fmt.Errorf("record for snippet %q mixes %s and %s rules", current.SnippetID, current.Kind, kind)
		}
		current.Kind = kind
		return nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("line %d: expected \"key: value\", got %q", lineNo, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "code snippet id":
			if err := flush(); err != nil {
				return nil, err
			}
			current = &CheckerConfig{SnippetID: value}
			thresholdSeen = false
		case "metric name":
			if current == nil {
				return nil, fmt.Errorf("line %d: %q before any snippet id", lineNo, line)
			}
			if err := setKind(KindMetric); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.MetricName = value
		case "value threshold":
			if current == nil {
				return nil, fmt.Errorf("line %d: %q before any snippet id", lineNo, line)
			}
			if err := setKind(KindMetric); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			low, high, err := parseThreshold(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Low = low
			current.High = high
			thresholdSeen = true
		case "banned words":
			if current == nil {
				return nil, fmt.Errorf("line %d: %q before any snippet id", lineNo, line)
			}
			if err := setKind(KindBanned); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Words = splitWords(value)
		case "required words":
			if current == nil {
				return nil, fmt.Errorf("line %d: %q before any snippet id", lineNo, line)
			}
			if err := setKind(KindRequired); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Words = splitWords(value)
		case "hint":
			if current == nil {
				return nil, fmt.Errorf("line %d: %q before any snippet id", lineNo, line)
			}
			current.Hint = value
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", lineNo, key)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return configs, nil
}

func parseThreshold(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("value threshold needs \"low, high\", got %q", value)
	}

	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad low threshold %q: %w", parts[0], err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad high threshold %q: %w", parts[1], err)
	}

	return low, high, nil
}

func splitWords(value string) []string {
	var words []string
	for _, part := range strings.Split(value, ",") {
		word := strings.TrimSpace(part)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
